package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/luno/jettison/errors"
	"github.com/luno/jettison/j"
	"github.com/spf13/cobra"

	"github.com/luno/topodash"
	"github.com/luno/topodash/api/render"
	"github.com/luno/topodash/server/ops"
)

const barWidth = 20

var (
	controllersPath string
	watch           bool
	watchPeriod     time.Duration
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "show which controllers are alive",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cli := newClient()
		if !watch {
			return printStatus(ctx, cli, cmd.OutOrStdout())
		}

		ti := time.NewTicker(watchPeriod)
		defer ti.Stop()
		for {
			if err := printStatus(ctx, cli, cmd.OutOrStdout()); err != nil {
				return err
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ti.C:
			}
		}
	},
}

func init() {
	f := statusCmd.Flags()
	f.StringVar(&controllersPath, "controllers", "/data/controllers.json", "path or url of the controller list")
	f.BoolVar(&watch, "watch", false, "keep refreshing")
	f.DurationVar(&watchPeriod, "period", 3*time.Second, "refresh period with --watch")
}

var barColors = map[string]lipgloss.Color{
	"red":     lipgloss.Color("#FF0000"),
	"blue":    lipgloss.Color("#0000FF"),
	"green":   lipgloss.Color("#00FF00"),
	"orange":  lipgloss.Color("#FFA500"),
	"cyan":    lipgloss.Color("#00FFFF"),
	"magenta": lipgloss.Color("#FF00FF"),
	"yellow":  lipgloss.Color("#FFFF00"),
	"purple":  lipgloss.Color("#800080"),
	"black":   lipgloss.Color("#000000"),
}

var (
	nameStyle = lipgloss.NewStyle().Bold(true).Width(12)
	deadStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
)

func printStatus(ctx context.Context, cli *topodash.Client, out io.Writer) error {
	var controllers, active []string
	if err := fetchJSON(ctx, cli, controllersPath, &controllers); err != nil {
		return err
	}
	if err := fetchJSON(ctx, cli, "/wm/onos/registry/controllers/json", &active); err != nil {
		return err
	}
	_, err := fmt.Fprintln(out, renderBars(ops.ControllerBars(controllers, active)))
	if err != nil {
		return errors.Wrap(err, "")
	}
	return nil
}

func fetchJSON(ctx context.Context, cli *topodash.Client, path string, v any) error {
	b, err := cli.Fetch(ctx, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, v); err != nil {
		return errors.Wrap(err, "decode", j.KV("path", path))
	}
	return nil
}

func renderBars(bars []render.ControllerBar) string {
	rows := make([]string, 0, len(bars))
	for _, b := range bars {
		var bar string
		if b.Active {
			bar = lipgloss.NewStyle().Foreground(barColors[b.Color]).Render(strings.Repeat("█", barWidth))
		} else {
			bar = deadStyle.Render(strings.Repeat("░", barWidth))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, nameStyle.Render(b.Name), bar))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

package config

import (
	"bytes"
	"flag"
	"io"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/luno/jettison/errors"
	"github.com/luno/jettison/j"
	"gopkg.in/yaml.v3"
)

var configFile = flag.String("config", "", "path to a config yaml")

type Mode string

const (
	ModeLive  Mode = "live"
	ModeMock  Mode = "mock"
	ModeProxy Mode = "proxy"
)

type Config struct {
	ControllerURL string `yaml:"controller_url" validate:"required,url"`
	Mode          Mode   `yaml:"mode" validate:"oneof=live mock proxy"`
	FixturesDir   string `yaml:"fixtures_dir" validate:"required"`

	PollPeriod   time.Duration `yaml:"poll_period" validate:"gt=0"`
	FetchTimeout time.Duration `yaml:"fetch_timeout" validate:"gt=0"`

	// Sources overrides the url of a source, an empty url disables it.
	Sources map[string]string `yaml:"sources" validate:"dive,keys,oneof=links switches flows controllers activeControllers mapping configuration,endkeys"`

	Layout Layout `yaml:"layout"`
}

type LngLat struct {
	Lng float64 `yaml:"lng" validate:"gte=-180,lte=180"`
	Lat float64 `yaml:"lat" validate:"gte=-85,lte=85"`
}

type XY struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type Widths struct {
	Core        float64 `yaml:"core" validate:"gt=0"`
	Aggregation float64 `yaml:"aggregation" validate:"gt=0"`
	Edge        float64 `yaml:"edge" validate:"gt=0"`
}

type FanOutAngles struct {
	Aggregation float64 `yaml:"aggregation"`
	Edge        float64 `yaml:"edge"`
}

type Layout struct {
	Center    LngLat  `yaml:"center"`
	Scale     float64 `yaml:"scale" validate:"gt=0"`
	Rotate    float64 `yaml:"rotate" validate:"gte=-360,lte=360"`
	Translate XY      `yaml:"translate"`

	Widths       Widths       `yaml:"widths"`
	FanOutAngles FanOutAngles `yaml:"fan_out_angles"`
	Fallback     LngLat       `yaml:"fallback"`

	// EdgeParentSentinel replaces the last dpid component of an edge switch
	// to find its aggregation switch.
	EdgeParentSentinel string `yaml:"edge_parent_sentinel" validate:"required,hexadecimal"`
}

func Default() Config {
	return Config{
		ControllerURL: "http://127.0.0.1:8080",
		Mode:          ModeLive,
		FixturesDir:   "data",
		PollPeriod:    3 * time.Second,
		FetchTimeout:  20 * time.Second,
		Layout: Layout{
			Center:    LngLat{Lng: 82, Lat: 46},
			Scale:     8000,
			Rotate:    -180,
			Translate: XY{X: 480, Y: 250},
			Widths: Widths{
				Core:        9,
				Aggregation: 6,
				Edge:        3,
			},
			FanOutAngles: FanOutAngles{
				Aggregation: 90,
				Edge:        7,
			},
			Fallback:           LngLat{Lng: -98, Lat: 39},
			EdgeParentSentinel: "01",
		},
	}
}

var validate = validator.New()

var config = Default()

func MustLoadConfig() {
	if *configFile == "" {
		return
	}
	c, err := os.ReadFile(*configFile)
	if err != nil {
		panic(err)
	}
	config, err = decodeConfig(c)
	if err != nil {
		panic(err)
	}
}

func GetConfig() Config {
	return config
}

func decodeConfig(content []byte) (Config, error) {
	c := Default()
	d := yaml.NewDecoder(bytes.NewReader(content))
	d.KnownFields(true)
	err := d.Decode(&c)
	if err != nil && !errors.Is(err, io.EOF) {
		return Config{}, errors.Wrap(err, "decode config")
	}
	if err := validate.Struct(c); err != nil {
		return Config{}, errors.Wrap(err, "invalid config", j.KV("file", *configFile))
	}
	return c, nil
}

package topodash

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/luno/jettison/errors"

	"github.com/luno/topodash/api"
)

const datagridPath = "/wm/onos/datagrid"

// AddIntents posts a batch of intents. Intents with IntentOp remove are
// submitted the same way, the controller acts on each intent's op.
func (c *Client) AddIntents(ctx context.Context, intents []api.Intent) ([]byte, error) {
	b, err := json.Marshal(intents)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	return c.do(ctx, http.MethodPost, datagridPath+"/add/intents/json", b)
}

func (c *Client) GetIntents(ctx context.Context, category string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, datagridPath+"/get/intents/"+url.PathEscape(category)+"/json", nil)
}

func (c *Client) GetIntent(ctx context.Context, category, id string) ([]byte, error) {
	p := datagridPath + "/get/intent/" + url.PathEscape(category) + "/" + url.PathEscape(id) + "/json"
	return c.do(ctx, http.MethodGet, p, nil)
}

func (c *Client) PurgeIntents(ctx context.Context) ([]byte, error) {
	return c.do(ctx, http.MethodDelete, datagridPath+"/delete/intents/json", nil)
}

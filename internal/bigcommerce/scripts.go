package bigcommerce

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Script is a storefront script tag as returned by the content API.
type Script struct {
	UUID        string `json:"uuid"`
	APIClientID string `json:"api_client_id"`
	Enabled     bool   `json:"enabled"`
	ChannelID   int    `json:"channel_id"`
	Name        string `json:"name"`
}

type listScriptsResponse struct {
	Data []Script `json:"data"`
}

type StoreInformation struct {
	SecureURL string `json:"secure_url"`
}

const scriptDescription = "Storefront widget managed by the app. Configure it from the app in your control panel."

type scriptBody struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	Kind            string `json:"kind"`
	HTML            string `json:"html"`
	LoadMethod      string `json:"load_method"`
	Location        string `json:"location"`
	Visibility      string `json:"visibility"`
	ConsentCategory string `json:"consent_category"`
	AutoUninstall   bool   `json:"auto_uninstall"`
	Enabled         bool   `json:"enabled"`
}

func newScriptBody(name, html string) scriptBody {
	return scriptBody{
		Name:            name,
		Description:     scriptDescription,
		Kind:            "script_tag",
		HTML:            html,
		LoadMethod:      "default",
		Location:        "footer",
		Visibility:      "storefront",
		ConsentCategory: "essential",
		AutoUninstall:   true,
		Enabled:         true,
	}
}

func (c *Client) scriptsURL(storeHash string) string {
	return fmt.Sprintf("%s/stores/%s/v3/content/scripts", c.apiBaseURL, url.PathEscape(storeHash))
}

func (c *Client) scriptURL(storeHash, scriptUUID string) string {
	return c.scriptsURL(storeHash) + "/" + url.PathEscape(scriptUUID)
}

func (c *Client) storeInformationURL(storeHash string) string {
	return fmt.Sprintf("%s/stores/%s/v2/store", c.apiBaseURL, url.PathEscape(storeHash))
}

func (c *Client) ListScripts(ctx context.Context, store Store) ([]Script, error) {
	var out listScriptsResponse
	if err := c.doJSON(ctx, "list scripts", http.MethodGet, c.scriptsURL(store.Hash), store.AccessToken, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// FindScriptByName returns nil when no script has that name.
func (c *Client) FindScriptByName(ctx context.Context, store Store, name string) (*Script, error) {
	scripts, err := c.ListScripts(ctx, store)
	if err != nil {
		return nil, err
	}
	for i := range scripts {
		if scripts[i].Name == name {
			return &scripts[i], nil
		}
	}
	return nil, nil
}

func (c *Client) RemoveAllScripts(ctx context.Context, store Store) error {
	scripts, err := c.ListScripts(ctx, store)
	if err != nil {
		return err
	}
	for _, s := range scripts {
		if err := c.doJSON(ctx, "delete script", http.MethodDelete, c.scriptURL(store.Hash, s.UUID), store.AccessToken, nil, nil); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) CreateScript(ctx context.Context, store Store, name, html string) error {
	return c.doJSON(ctx, "create script", http.MethodPost, c.scriptsURL(store.Hash), store.AccessToken, newScriptBody(name, html), nil)
}

func (c *Client) UpdateScript(ctx context.Context, store Store, scriptUUID, name, html string) error {
	return c.doJSON(ctx, "update script", http.MethodPut, c.scriptURL(store.Hash, scriptUUID), store.AccessToken, newScriptBody(name, html), nil)
}

// UpsertScript updates the script with this name, or creates it.
func (c *Client) UpsertScript(ctx context.Context, store Store, name, html string) error {
	existing, err := c.FindScriptByName(ctx, store, name)
	if err != nil {
		return err
	}
	if existing == nil {
		return c.CreateScript(ctx, store, name, html)
	}
	return c.UpdateScript(ctx, store, existing.UUID, name, html)
}

func (c *Client) StoreInformation(ctx context.Context, store Store) (StoreInformation, error) {
	var out StoreInformation
	if err := c.doJSON(ctx, "store information", http.MethodGet, c.storeInformationURL(store.Hash), store.AccessToken, nil, &out); err != nil {
		return StoreInformation{}, err
	}
	return out, nil
}

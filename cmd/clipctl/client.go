package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"
)

// apiEnvelope mirrors the server's response envelope.
type apiEnvelope struct {
	Error  int32           `json:"error"`
	Msg    string          `json:"msg"`
	Detail string          `json:"detail,omitempty"`
	Data   json.RawMessage `json:"data"`
}

type apiClient struct {
	http *resty.Client
}

func newAPIClient(cmd *cobra.Command) *apiClient {
	server, _ := cmd.Flags().GetString("server")
	return &apiClient{
		http: resty.New().
			SetBaseURL(server).
			SetTimeout(60 * time.Second),
	}
}

func (c *apiClient) get(path string, query map[string]string, out any) error {
	req := c.http.R()
	if query != nil {
		req.SetQueryParams(query)
	}
	resp, err := req.Get(path)
	return c.decode(resp, err, out)
}

func (c *apiClient) post(path string, body any, out any) error {
	resp, err := c.http.R().SetBody(body).Post(path)
	return c.decode(resp, err, out)
}

func (c *apiClient) delete(path string) error {
	resp, err := c.http.R().Delete(path)
	return c.decode(resp, err, nil)
}

func (c *apiClient) decode(resp *resty.Response, err error, out any) error {
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	if resp.StatusCode() >= 400 {
		return fmt.Errorf("server returned %s", resp.Status())
	}

	var envelope apiEnvelope
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		return fmt.Errorf("malformed response: %w", err)
	}
	if envelope.Error != 0 {
		if envelope.Detail != "" {
			return fmt.Errorf("%s: %s", envelope.Msg, envelope.Detail)
		}
		return fmt.Errorf("%s", envelope.Msg)
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(envelope.Data, out)
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(data))
	return nil
}

// Package salesforce implements the REST client used to talk to the org.
package salesforce

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2/clientcredentials"
	"gorm.io/gorm"

	"github.com/hartikaaggarwal/salesforce-chatter-bot-groups/internal/db/controller/connection"
)

const (
	defaultTimeout = 30 * time.Second

	tokenPath = "/services/oauth2/token" //nolint:gosec // path, not a credential
)

type engine struct {
	httpClient *http.Client

	instanceURL      string
	apiVersion       string
	defaultNetworkID string

	// describe cache for the conditionally present NetworkId field
	describeMu      sync.Mutex
	hasNetworkField *bool
}

// Engine represents the Salesforce client engine.
var Engine engine //nolint:gochecknoglobals

// Open initializes the Salesforce client using settings from the database.
// The OAuth2 client credentials flow is used; the instance URL is taken from
// the first token response.
func Open(db *gorm.DB) error {
	// get settings
	settings := &connection.Settings{}
	if err := settings.Load(db); err != nil {
		return err
	}

	cc := clientcredentials.Config{
		ClientID:     settings.ClientID,
		ClientSecret: settings.ClientSecret,
		TokenURL:     strings.TrimSuffix(settings.LoginURL, "/") + tokenPath,
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	token, err := cc.Token(ctx)
	if err != nil {
		return err
	}

	instanceURL, _ := token.Extra("instance_url").(string)
	if instanceURL == "" {
		return ErrNoInstanceURL
	}

	Engine = engine{
		httpClient:       cc.Client(context.Background()),
		instanceURL:      strings.TrimSuffix(instanceURL, "/"),
		apiVersion:       settings.APIVersion,
		defaultNetworkID: settings.DefaultNetworkID,
	}

	return nil
}

// DefaultNetworkID returns the configured fallback community id, empty for
// the org default network.
func (e *engine) DefaultNetworkID() string {
	return e.defaultNetworkID
}

// Test verifies the Salesforce API connection.
func (e *engine) Test() error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	if e.httpClient == nil {
		return ErrClientNotInitialized
	}

	var limits map[string]json.RawMessage
	if err := e.get(ctx, e.restPath("limits"), &limits); err != nil {
		return err
	}

	log.Info().Int("limit_count", len(limits)).Msg("Salesforce API connection test successful")

	return nil
}

// restPath builds a versioned data API path like /services/data/v59.0/limits.
func (e *engine) restPath(parts ...string) string {
	return "/services/data/" + e.apiVersion + "/" + strings.Join(parts, "/")
}

func (e *engine) get(ctx context.Context, path string, out any) error {
	return e.do(ctx, http.MethodGet, path, nil, out)
}

func (e *engine) post(ctx context.Context, path string, body io.Reader, out any) error {
	return e.do(ctx, http.MethodPost, path, body, out)
}

func (e *engine) do(ctx context.Context, method, path string, body io.Reader, out any) error {
	if e.httpClient == nil {
		return ErrClientNotInitialized
	}

	req, err := http.NewRequestWithContext(ctx, method, e.instanceURL+path, body)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return err
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return newAPIError(resp)
	}

	if out == nil {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// query runs a SOQL query and decodes the result records into out.
func (e *engine) query(ctx context.Context, soql string, out any) error {
	path := e.restPath("query") + "?q=" + url.QueryEscape(soql)

	var result struct {
		TotalSize int             `json:"totalSize"`
		Done      bool            `json:"done"`
		Records   json.RawMessage `json:"records"`
	}

	if err := e.get(ctx, path, &result); err != nil {
		return err
	}

	return json.Unmarshal(result.Records, out)
}

// soqlIDList quotes validated ids for use in an IN clause.
func soqlIDList(ids []string) string {
	quoted := make([]string, len(ids))
	for i, id := range ids {
		quoted[i] = fmt.Sprintf("'%s'", id)
	}

	return strings.Join(quoted, ",")
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"net/url"

	"golang.org/x/text/unicode/norm"
)

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type signupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Login exchanges credentials for an access token. The credentials are sent
// form-encoded. Any non-2xx answer is an ErrAuth failure.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	form := url.Values{}
	form.Set("username", norm.NFC.String(username))
	form.Set("password", password)

	r := request{
		op:         "login",
		method:     http.MethodPost,
		url:        c.baseURL + "/auth/login",
		body:       formBody(form),
		contentTyp: "application/x-www-form-urlencoded",
		loginStyle: true,
	}

	var out tokenResponse
	if err := c.do(ctx, r, &out); err != nil {
		return "", err
	}
	if out.AccessToken == "" {
		return "", &Error{Kind: KindAuth, Op: r.op, Status: http.StatusOK, Message: "server returned no access token"}
	}
	return out.AccessToken, nil
}

// Signup registers a new account and returns the server's confirmation message.
func (c *Client) Signup(ctx context.Context, username, password string) (string, error) {
	r, err := c.jsonRequest("signup", http.MethodPost, "/auth/signup", signupRequest{
		Username: norm.NFC.String(username),
		Password: password,
	}, false)
	if err != nil {
		return "", err
	}

	var out messageResponse
	if err := c.do(ctx, r, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

package models

import "encoding/json"

// User is the identity record returned by the backend on login.
// The dashboard treats it as opaque and only caches it alongside the token.
type User = json.RawMessage

// LoginRequest is the request body for the login endpoint
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the success body of the login endpoint
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}

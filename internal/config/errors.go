package config

import "errors"

var errMissingRequired = errors.New("required environment variables API_BASE_URL or SESSION_SECRET are not set")

package urlparser

import (
	"errors"
	"strings"
)

type PathParams struct {
	Resource  string
	ProductId string
}

// ParseAPIPath splits an /api/... request path into its resource name and
// optional product id.
func ParseAPIPath(path string) (PathParams, error) {
	trimmed := strings.Trim(path, "/")
	parts := strings.Split(trimmed, "/")

	params := PathParams{}

	if len(parts) == 0 || parts[0] != "api" {
		return params, errors.New("invalid path, expected /api/...")
	}

	switch len(parts) {
	case 2:
		if parts[1] == "" {
			return params, errors.New("missing resource, expected /api/{resource}")
		}
		params.Resource = parts[1]
		return params, nil
	case 3:
		if parts[1] == "" || parts[2] == "" {
			return params, errors.New("invalid path, expected /api/{resource}/{productId}")
		}
		params.Resource = parts[1]
		params.ProductId = parts[2]
		return params, nil
	default:
		return params, errors.New("wrong url format")
	}
}

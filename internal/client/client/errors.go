package client

import (
	"errors"

	"github.com/dmitrijs2005/giftbox/internal/api"
	"github.com/dmitrijs2005/giftbox/internal/common"
)

var (
	ErrUnavailable  = api.ErrUnavailable
	ErrUnauthorized = common.ErrorUnauthorized
	ErrNoAPIKey     = errors.New("api key is not configured")
)

// Package client holds the read-only customer entity referenced by orders.
package client

import (
	"errors"
	"strings"

	"github.com/ca-ayumi/fast-food-order-service/internal/core/domain/model/kernel"
	"github.com/ca-ayumi/fast-food-order-service/internal/pkg/errs"
)

// ErrClientIsNotConstructed indicates that a Client was not created through RestoreClient.
var ErrClientIsNotConstructed = errors.New("Client must be created via RestoreClient")

// Client is owned by the customer registry. The order engine only checks it exists
// and shows it on order views.
type Client struct {
	id    kernel.UUID
	name  string
	email string

	isConstructed bool
}

// RestoreClient rebuilds a client read from storage. Name and email may be empty
// for anonymous kiosk customers.
func RestoreClient(id kernel.UUID, name, email string) (*Client, error) {
	if err := id.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("client id", err)
	}

	return &Client{
		id:            id,
		name:          strings.TrimSpace(name),
		email:         strings.TrimSpace(email),
		isConstructed: true,
	}, nil
}

func (c *Client) ID() kernel.UUID {
	return c.id
}

func (c *Client) Name() string {
	return c.name
}

func (c *Client) Email() string {
	return c.email
}

func (c *Client) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrClientIsNotConstructed
	}
	return nil
}

package imports

import (
	"net/url"
	"time"
)

// Client refers to types of other packages in its marked members.
type Client struct {
	timeout  time.Duration                `testable:""`
	endpoint *url.URL                     `testable:"getter,setter"`
	hooks    chan<- func(time.Time) error `testable:"getter"`
}

//testable:generate
func (c *Client) resolve(_ string, _ int, opts ...func(*url.URL)) (*url.URL, error) {
	u := *c.endpoint
	for _, opt := range opts {
		opt(&u)
	}
	return &u, nil
}

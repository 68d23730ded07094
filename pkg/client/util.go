package client

import (
	"fmt"
	"net/url"
)

func urlQueryEscape(s string) string {
	return url.QueryEscape(s)
}

func incomingOrderPath(id uint) string {
	return fmt.Sprintf("/api/incoming-orders/%d", id)
}

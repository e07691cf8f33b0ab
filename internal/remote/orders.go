package remote

import (
	"context"
	"net/http"
	"net/url"

	"github.com/aniket44788/Mahakal-Admin/internal/domain"
	"github.com/aniket44788/Mahakal-Admin/internal/session"
)

type ordersResponse struct {
	envelope
	Orders []domain.Order `json:"orders"`
}

func (c *Client) ListUserOrders(ctx context.Context, sess session.Session, userID string) ([]domain.Order, error) {
	var resp ordersResponse
	path := "/api/payment/admin/user/" + url.PathEscape(userID) + "/orders"
	if err := c.do(ctx, request{method: http.MethodGet, path: path, sess: &sess}, &resp); err != nil {
		return nil, err
	}

	if resp.failed() {
		return nil, &RejectedError{StatusCode: http.StatusOK, Message: resp.messageOr("Failed to load orders.")}
	}

	return orderList(resp.Orders), nil
}

func (c *Client) ListRecentOrders(ctx context.Context, sess session.Session) ([]domain.Order, error) {
	var resp ordersResponse
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/payment/getrecentorders", sess: &sess}, &resp); err != nil {
		return nil, err
	}

	if resp.failed() {
		return nil, &RejectedError{StatusCode: http.StatusOK, Message: resp.messageOr("Failed to load recent orders.")}
	}

	return orderList(resp.Orders), nil
}

// UpdateDeliveryStatus only reports success when the remote explicitly says so.
func (c *Client) UpdateDeliveryStatus(ctx context.Context, sess session.Session, orderID string, status domain.DeliveryStatus) error {
	body := map[string]string{
		"deliveryStatus": string(status),
	}

	req, err := jsonRequest(http.MethodPut, "/api/payment/order/update/"+url.PathEscape(orderID), &sess, body)
	if err != nil {
		return err
	}

	var resp envelope
	if err := c.do(ctx, req, &resp); err != nil {
		return err
	}

	if resp.Success == nil || !*resp.Success {
		return &RejectedError{StatusCode: http.StatusOK, Message: resp.messageOr("Failed to update order status.")}
	}

	return nil
}

func orderList(orders []domain.Order) []domain.Order {
	if orders == nil {
		return []domain.Order{}
	}
	return orders
}

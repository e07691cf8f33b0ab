package remote

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/aniket44788/Mahakal-Admin/internal/domain"
	"github.com/aniket44788/Mahakal-Admin/internal/session"
)

type ProductList struct {
	Products []domain.Product `json:"products"`
	Count    int              `json:"count"`
}

type productListResponse struct {
	envelope
	ProductList
}

func (c *Client) ListProducts(ctx context.Context, sess session.Session) (ProductList, error) {
	var resp productListResponse
	if err := c.do(ctx, request{method: http.MethodGet, path: "/products/all", sess: &sess}, &resp); err != nil {
		return ProductList{}, err
	}

	if resp.failed() {
		return ProductList{}, &RejectedError{StatusCode: http.StatusOK, Message: resp.messageOr("Failed to load products.")}
	}

	list := resp.ProductList
	if list.Products == nil {
		list.Products = []domain.Product{}
	}
	return list, nil
}

type productResponse struct {
	envelope
	Product domain.Product `json:"product"`
}

func (c *Client) GetProduct(ctx context.Context, sess session.Session, id string) (domain.Product, error) {
	var resp productResponse
	path := "/products/single/" + url.PathEscape(id)
	if err := c.do(ctx, request{method: http.MethodGet, path: path, sess: &sess}, &resp); err != nil {
		return domain.Product{}, err
	}

	if resp.Success == nil || !*resp.Success {
		return domain.Product{}, &RejectedError{StatusCode: http.StatusOK, Message: resp.messageOr("Product not found.")}
	}

	return resp.Product, nil
}

func (c *Client) CreateProduct(ctx context.Context, sess session.Session, p domain.Product) error {
	return c.sendProduct(ctx, sess, http.MethodPost, "/createproduct", p)
}

func (c *Client) UpdateProduct(ctx context.Context, sess session.Session, id string, p domain.Product) error {
	return c.sendProduct(ctx, sess, http.MethodPatch, "/products/update/"+url.PathEscape(id), p)
}

func (c *Client) DeleteProduct(ctx context.Context, sess session.Session, id string) error {
	return c.do(ctx, request{method: http.MethodDelete, path: "/delete/" + url.PathEscape(id), sess: &sess}, nil)
}

// sendProduct posts the product as multipart form fields, which is what the
// product endpoints accept. Image files are not sent.
func (c *Client) sendProduct(ctx context.Context, sess session.Session, method, path string, p domain.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	for _, field := range productFields(p) {
		if field.value == "" {
			continue
		}
		if err := form.WriteField(field.name, field.value); err != nil {
			return fmt.Errorf("write form field %s: %w", field.name, err)
		}
	}
	if err := form.Close(); err != nil {
		return fmt.Errorf("close form: %w", err)
	}

	var resp envelope
	req := request{
		method:      method,
		path:        path,
		body:        &buf,
		contentType: form.FormDataContentType(),
		sess:        &sess,
	}
	if err := c.do(ctx, req, &resp); err != nil {
		return err
	}

	if resp.failed() {
		return &RejectedError{StatusCode: http.StatusOK, Message: resp.messageOr("Failed to save product.")}
	}
	return nil
}

type formField struct {
	name  string
	value string
}

func productFields(p domain.Product) []formField {
	discount := ""
	if p.DiscountPrice != nil {
		discount = p.DiscountPrice.String()
	}

	return []formField{
		{"name", p.Name},
		{"description", p.Description},
		{"category", p.Category},
		{"price", p.Price.String()},
		{"discountPrice", discount},
		{"quantity", strconv.Itoa(p.Quantity)},
		{"unit", string(p.Unit)},
		{"material", p.Material},
		{"size", p.Size},
		{"weight", p.Weight},
		{"language", p.Language},
		{"deity", p.Deity},
		{"occasion", p.Occasion},
		{"isAvailable", strconv.FormatBool(p.IsAvailable)},
	}
}

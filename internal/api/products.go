package api

import (
	"context"
	"fmt"
	"io"

	"github.com/agromarket/agromarket-go/internal/domain"
	"github.com/agromarket/agromarket-go/internal/transport"
)

type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Quantity    int
	Category    string
	// Image is optional; when set the request goes out as multipart.
	ImageName string
	Image     io.Reader
}

func (in *ProductInput) fields() map[string]string {
	return map[string]string{
		"name":        in.Name,
		"description": in.Description,
		"price":       fmt.Sprintf("%g", in.Price),
		"quantity":    fmt.Sprintf("%d", in.Quantity),
		"category":    in.Category,
	}
}

func (c *Client) Products(ctx context.Context) ([]domain.Product, error) {
	env, err := c.call(ctx, "products", &transport.Request{
		Method: "GET",
		Path:   "/products",
		Auth:   transport.AuthUser,
	})
	if err != nil {
		return nil, err
	}
	var products []domain.Product
	if err := env.DecodeData(&products); err != nil {
		return nil, transport.NewServerError(200, env)
	}
	return products, nil
}

func (c *Client) MyProducts(ctx context.Context) ([]domain.Product, error) {
	env, err := c.call(ctx, "products", &transport.Request{
		Method: "GET",
		Path:   "/products/my-products",
		Auth:   transport.AuthUser,
	})
	if err != nil {
		return nil, err
	}
	var products []domain.Product
	if err := env.DecodeData(&products); err != nil {
		return nil, transport.NewServerError(200, env)
	}
	return products, nil
}

// AddProduct creates a listing. Product creation is always multipart on
// this backend, image or not.
func (c *Client) AddProduct(ctx context.Context, in ProductInput) (*domain.Product, error) {
	if in.Name == "" || in.Price <= 0 {
		return nil, transport.NewInputError("product name and a positive price are required")
	}
	req := &transport.Request{
		Method: "POST",
		Path:   "/products",
		Auth:   transport.AuthUser,
	}
	if in.Image != nil {
		req.Multipart = &transport.MultipartPayload{
			FileField: "image",
			FileName:  in.ImageName,
			File:      in.Image,
			Fields:    in.fields(),
		}
	} else {
		req.Body = map[string]any{
			"name": in.Name, "description": in.Description,
			"price": in.Price, "quantity": in.Quantity, "category": in.Category,
		}
	}
	env, err := c.call(ctx, "products", req)
	if err != nil {
		return nil, err
	}
	var product domain.Product
	if err := env.DecodeData(&product); err != nil {
		return nil, transport.NewServerError(200, env)
	}
	return &product, nil
}

func (c *Client) UpdateProduct(ctx context.Context, productID string, in ProductInput) (*domain.Product, error) {
	if productID == "" {
		return nil, transport.NewInputError("product id is required")
	}
	req := &transport.Request{
		Method: "PUT",
		Path:   "/products/" + productID,
		Auth:   transport.AuthUser,
	}
	if in.Image != nil {
		req.Multipart = &transport.MultipartPayload{
			FileField: "image",
			FileName:  in.ImageName,
			File:      in.Image,
			Fields:    in.fields(),
		}
	} else {
		req.Body = map[string]any{
			"name": in.Name, "description": in.Description,
			"price": in.Price, "quantity": in.Quantity, "category": in.Category,
		}
	}
	env, err := c.call(ctx, "products", req)
	if err != nil {
		return nil, err
	}
	var product domain.Product
	if err := env.DecodeData(&product); err != nil {
		return nil, transport.NewServerError(200, env)
	}
	return &product, nil
}

func (c *Client) DeleteProduct(ctx context.Context, productID string) error {
	if productID == "" {
		return transport.NewInputError("product id is required")
	}
	_, err := c.call(ctx, "products", &transport.Request{
		Method: "DELETE",
		Path:   "/products/" + productID,
		Auth:   transport.AuthUser,
	})
	return err
}

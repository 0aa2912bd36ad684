package memstore

import (
	"cmp"
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/nikolayk812/sqlcpp-shop/internal/domain"
)

type productRepository struct {
	view
}

func (r *productRepository) CreateProduct(_ context.Context, product domain.Product) (domain.Product, error) {
	err := r.write(func(st *state) error {
		st.nextProductID++
		now := r.s.now()
		product.ID = st.nextProductID
		product.CreatedAt = now
		product.UpdatedAt = now
		st.products[product.ID] = product
		return nil
	})
	if err != nil {
		return domain.Product{}, err
	}

	return product, nil
}

func (r *productRepository) GetProduct(_ context.Context, id int64) (domain.Product, error) {
	var product domain.Product

	err := r.read(func(st *state) error {
		p, ok := st.products[id]
		if !ok {
			return domain.NotFound(domain.EntityProduct)
		}
		product = p
		return nil
	})

	return product, err
}

func (r *productRepository) ListProducts(_ context.Context) ([]domain.Product, error) {
	var products []domain.Product

	err := r.read(func(st *state) error {
		products = slices.SortedFunc(maps.Values(st.products), func(a, b domain.Product) int {
			return cmp.Compare(a.ID, b.ID)
		})
		return nil
	})

	return products, err
}

func (r *productRepository) UpdateProduct(_ context.Context, id int64, update func(domain.Product) (domain.Product, error)) (domain.Product, error) {
	var updated domain.Product

	err := r.write(func(st *state) error {
		current, ok := st.products[id]
		if !ok {
			return domain.NotFound(domain.EntityProduct)
		}

		next, err := update(current)
		if err != nil {
			return err
		}

		next.ID = current.ID
		next.CreatedAt = current.CreatedAt
		next.UpdatedAt = r.s.now()
		st.products[id] = next
		updated = next
		return nil
	})

	return updated, err
}

func (r *productRepository) DeleteProduct(_ context.Context, id int64) (bool, error) {
	deleted := false

	err := r.write(func(st *state) error {
		if _, ok := st.products[id]; !ok {
			return nil
		}

		for _, item := range st.orderItems {
			if item.ProductID == id {
				return fmt.Errorf("%w: product[%d] is referenced by orders", domain.ErrConflict, id)
			}
		}

		for itemID, item := range st.cartItems {
			if item.ProductID == id {
				delete(st.cartItems, itemID)
			}
		}

		delete(st.products, id)
		deleted = true
		return nil
	})

	return deleted, err
}

// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package cellphone

import (
	"encoding/json"
	"fmt"

	"github.com/aungmawjj/juria-loyalty/execution/chaincode"
	"github.com/aungmawjj/juria-loyalty/util"
)

var (
	keyProductCount = []byte("productCount")
	prefixProduct   = []byte("product/")
)

// Product can be bought with loyalty points
type Product struct {
	Name          string `json:"name"`
	PointCost     uint64 `json:"pointCost"`
	PurchaseCount uint64 `json:"purchaseCount"`
}

// DefaultCatalog is deployed when no products are given
func DefaultCatalog() []Product {
	return []Product{
		{Name: "watch", PointCost: 2},
		{Name: "headphones", PointCost: 5},
		{Name: "smartphone", PointCost: 20},
	}
}

// catalog is fixed at deployment, ids are the positions in products
func initCatalog(ctx chaincode.CallContext, products []Product) {
	for i, p := range products {
		p.PurchaseCount = 0
		setProduct(ctx, uint64(i), &p)
	}
	ctx.SetState(keyProductCount, util.Uint64Bytes(uint64(len(products))))
}

func getProductCount(ctx chaincode.CallContext) uint64 {
	return util.BytesUint64(ctx.GetState(keyProductCount))
}

func getProduct(ctx chaincode.CallContext, id uint64) (*Product, error) {
	if id >= getProductCount(ctx) {
		return nil, ErrUnknownProduct
	}
	b := ctx.GetState(productKey(id))
	if b == nil {
		return nil, ErrUnknownProduct
	}
	product := new(Product)
	if err := json.Unmarshal(b, product); err != nil {
		return nil, fmt.Errorf("corrupted product %d: %w", id, err)
	}
	return product, nil
}

func setProduct(ctx chaincode.CallContext, id uint64, product *Product) {
	b, _ := json.Marshal(product)
	ctx.SetState(productKey(id), b)
}

func productKey(id uint64) []byte {
	return util.ConcatBytes(prefixProduct, util.Uint64Bytes(id))
}

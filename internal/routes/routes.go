package routes

import (
	"net/http"
	producthandler "shopeasy/internal/handlers/product"
	"shopeasy/pkg/lib/urlparser"
)

type Routes struct {
	productHandler *producthandler.Handler
}

func New(productHandler *producthandler.Handler) *Routes {
	return &Routes{
		productHandler: productHandler,
	}
}

func (r *Routes) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/", r.pathParser)
}

func (r *Routes) pathParser(ww http.ResponseWriter, req *http.Request) {
	params, err := urlparser.ParseAPIPath(req.URL.Path)
	if err != nil {
		http.NotFound(ww, req)
		return
	}

	switch {
	case params.Resource == "product" && params.ProductId == "" && req.Method == http.MethodGet:
		// GET /api/product
		r.productHandler.ListProducts(ww, req)
	case params.Resource == "postProduct" && params.ProductId == "" && req.Method == http.MethodPost:
		// POST /api/postProduct
		r.productHandler.CreateProduct(ww, req)
	case params.Resource == "updateProduct" && params.ProductId != "" && req.Method == http.MethodPut:
		// PUT /api/updateProduct/{id}
		r.productHandler.UpdateProduct(ww, req, params.ProductId)
	case params.Resource == "deleteProduct" && params.ProductId != "" && req.Method == http.MethodDelete:
		// DELETE /api/deleteProduct/{id}
		r.productHandler.DeleteProduct(ww, req, params.ProductId)
	default:
		http.NotFound(ww, req)
	}
}

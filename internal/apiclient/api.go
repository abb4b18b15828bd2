package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/karanch577/sneakerx-admin/internal/model"
)

// Resource names, shared with the list controllers for invalidation
const (
	ResourceCategories = "category"
	ResourceCoupons    = "coupon"
	ResourceOrders     = "order"
	ResourceProducts   = "product"
	ResourceUsers      = "user"
)

// ProductCategoryFilter is the list filter selecting products of one category
const ProductCategoryFilter = "categoryId"

var (
	categoryEndpoints = Endpoints{
		Resource: ResourceCategories,
		List:     "/category/all",
		Create:   "/category/create",
		Update:   "/category/:id",
		Delete:   "/category/:id",
		ListKey:  "collections",
		ItemKey:  "collection",
	}
	couponEndpoints = Endpoints{
		Resource: ResourceCoupons,
		List:     "/coupon/all",
		Create:   "/coupon/create",
		Update:   "/coupon/update/:id",
		Delete:   "/coupon/:id",
		ListKey:  "coupons",
		ItemKey:  "coupon",
	}
	orderEndpoints = Endpoints{
		Resource:     ResourceOrders,
		List:         "/order/all",
		Get:          "/order/id/:id",
		Update:       "/order/update/:id",
		UpdateMethod: http.MethodPatch,
		Delete:       "/order/:id",
		ListKey:      "orders",
		ItemKey:      "order",
	}
	productEndpoints = Endpoints{
		Resource:     ResourceProducts,
		List:         "/product/list",
		Get:          "/product/id/:id",
		Create:       "/product/create",
		Update:       "/product/update/:id",
		UpdateMethod: http.MethodPatch,
		Delete:       "/product/:id",
		ListKey:      "products",
		ItemKey:      "product",
	}
	userEndpoints = Endpoints{
		Resource:     ResourceUsers,
		List:         "/user/all",
		Create:       "/user/create",
		Update:       "/user/update/:id",
		UpdateMethod: http.MethodPatch,
		Delete:       "/user/:id",
		ListKey:      "users",
		ItemKey:      "user",
	}
)

// API groups every resource of the SneakerX API
type API struct {
	Categories *Resource[model.Category]
	Coupons    *Resource[model.Coupon]
	Orders     *Orders
	Products   *Products
	Users      *Users
}

// NewAPI builds the resource set on one client
func NewAPI(c *Client) *API {
	return &API{
		Categories: NewResource[model.Category](c, categoryEndpoints),
		Coupons:    NewResource[model.Coupon](c, couponEndpoints),
		Orders:     &Orders{NewResource[model.Order](c, orderEndpoints)},
		Products:   &Products{NewResource[model.Product](c, productEndpoints)},
		Users:      &Users{NewResource[model.User](c, userEndpoints)},
	}
}

// Orders adds the sales aggregate to the order resource
type Orders struct {
	*Resource[model.Order]
}

// TotalSales returns the sales total, overall when rng is empty
func (o *Orders) TotalSales(ctx context.Context, rng model.SalesRange) (model.Sales, error) {
	var q url.Values
	if rng != "" {
		q = url.Values{"range": {string(rng)}}
	}
	req := request{resource: ResourceOrders, method: http.MethodGet, path: "/order/total-sales", query: q}
	env, err := o.client.do(ctx, req)
	if err != nil {
		return model.Sales{}, err
	}
	var sales []model.Sales
	if err := env.decode("sales", &sales); err != nil {
		return model.Sales{}, &Error{Kind: KindServer, Op: req.op(), Status: http.StatusOK, Err: err}
	}
	if len(sales) == 0 {
		return model.Sales{}, nil
	}
	return sales[0], nil
}

// Products adds photo removal to the product resource
type Products struct {
	*Resource[model.Product]
}

// UpdatePhotos removes the listed photos from a product
func (p *Products) UpdatePhotos(ctx context.Context, id string, photos []model.Photo) error {
	_, err := p.client.do(ctx, request{
		resource: ResourceProducts,
		method:   http.MethodPatch,
		path:     withID("/product/updatePhotos/:id", id),
		body:     model.PhotosUpdate{Photos: photos},
	})
	return err
}

// Users adds the role vocabulary and the session endpoints
type Users struct {
	*Resource[model.User]
}

// Roles lists the assignable roles
func (u *Users) Roles(ctx context.Context) ([]string, error) {
	req := request{resource: ResourceUsers, method: http.MethodGet, path: "/user/role"}
	env, err := u.client.do(ctx, req)
	if err != nil {
		return nil, err
	}
	roles := []string{}
	if err := env.decode("roles", &roles); err != nil {
		return nil, &Error{Kind: KindServer, Op: req.op(), Status: http.StatusOK, Err: err}
	}
	return roles, nil
}

// Profile returns the user behind the current session cookie
func (u *Users) Profile(ctx context.Context) (model.User, error) {
	return u.userCall(ctx, http.MethodGet, "/user/getprofile", nil)
}

// SignIn starts a session. The API sets the session cookie.
func (u *Users) SignIn(ctx context.Context, creds model.Credentials) (model.User, error) {
	return u.userCall(ctx, http.MethodPost, "/user/signin", creds)
}

// SignUp registers an account
func (u *Users) SignUp(ctx context.Context, in model.SignUp) (model.User, error) {
	return u.userCall(ctx, http.MethodPost, "/user/signup", in)
}

// SignOut ends the session and returns the server message
func (u *Users) SignOut(ctx context.Context) (string, error) {
	env, err := u.client.do(ctx, request{resource: ResourceUsers, method: http.MethodGet, path: "/user/signout"})
	if err != nil {
		return "", err
	}
	return env.message(), nil
}

func (u *Users) userCall(ctx context.Context, method, path string, body any) (model.User, error) {
	req := request{resource: ResourceUsers, method: method, path: path, body: body}
	env, err := u.client.do(ctx, req)
	if err != nil {
		return model.User{}, err
	}
	var user model.User
	if err := env.decode("user", &user); err != nil {
		return model.User{}, &Error{Kind: KindServer, Op: req.op(), Status: http.StatusOK, Err: err}
	}
	return user, nil
}

package mockapi

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/karanch577/sneakerx-admin/internal/model"
	"github.com/karanch577/sneakerx-admin/pkg/config"
	"github.com/karanch577/sneakerx-admin/pkg/jwtutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store  *Store
	server *Server
	cookie *http.Cookie
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := NewStore()
	jwt := jwtutil.NewJWTUtil(&config.JWTConfig{SigningKey: "test-key", ExpirationHours: 1})
	f := &fixture{store: store, server: New(store, jwt)}

	_, err := store.AddAccount("Admin", "admin@sneakerx.test", "secret1", model.RoleAdmin)
	require.NoError(t, err)

	rec := f.do(t, http.MethodPost, "/user/signin", `{"email":"admin@sneakerx.test","password":"secret1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookie {
			f.cookie = c
		}
	}
	require.NotNil(t, f.cookie)
	return f
}

func (f *fixture) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, BasePath+path, nil)
	} else {
		req = httptest.NewRequest(method, BasePath+path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if f.cookie != nil {
		req.AddCookie(f.cookie)
	}
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	out := map[string]json.RawMessage{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestRequireSession(t *testing.T) {
	f := newFixture(t)
	f.cookie = nil

	rec := f.do(t, http.MethodGet, "/category/all", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `false`, string(decode(t, rec)["success"]))

	f.cookie = &http.Cookie{Name: SessionCookie, Value: "garbage"}
	rec = f.do(t, http.MethodGet, "/category/all", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSignIn_WrongPassword(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodPost, "/user/signin", `{"email":"admin@sneakerx.test","password":"nope123"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `"Invalid email or password"`, string(decode(t, rec)["message"]))
}

func TestListPagination(t *testing.T) {
	f := newFixture(t)
	for _, name := range []string{"Running", "Basketball", "Lifestyle"} {
		f.store.AddCategory(name)
	}

	rec := f.do(t, http.MethodGet, "/category/all?page=2&limit=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)

	var items []model.Category
	require.NoError(t, json.Unmarshal(body["collections"], &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Lifestyle", items[0].Name)
	assert.JSONEq(t, `2`, string(body["currentPage"]))
	assert.JSONEq(t, `2`, string(body["totalPage"]))

	rec = f.do(t, http.MethodGet, "/coupon/all", "")
	body = decode(t, rec)
	assert.JSONEq(t, `[]`, string(body["coupons"]))
	assert.JSONEq(t, `0`, string(body["totalPage"]))
}

func TestCategoryLifecycle(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/category/create", `{"name":"Sneakers"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var cat model.Category
	require.NoError(t, json.Unmarshal(decode(t, rec)["collection"], &cat))
	assert.Equal(t, "Sneakers", cat.Name)
	assert.NotEmpty(t, cat.CreatedAt)

	rec = f.do(t, http.MethodPost, "/category/create", `{"name":"sneakers"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPut, "/category/"+cat.ID, `{"name":"Trainers"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodDelete, "/category/"+cat.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `"Category deleted successfully"`, string(decode(t, rec)["message"]))

	rec = f.do(t, http.MethodDelete, "/category/"+cat.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductMultipartAndPhotos(t *testing.T) {
	f := newFixture(t)
	cat := f.store.AddCategory("Running")

	form := model.ProductForm{
		Name: "Pegasus 40", Price: 13000, SellingPrice: 11000, CollectionID: cat.ID,
		Description: "Daily trainer", ColourShown: "Blue", Style: "PG40",
		Sizes: []model.SizeQuantity{{Size: "US 9", Quantity: 3}},
		Files: []model.Upload{
			{Filename: "a.jpg", Content: strings.NewReader("a")},
			{Filename: "b.jpg", Content: strings.NewReader("b")},
		},
	}
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, form.WriteMultipart(w))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, BasePath+"/product/create", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.AddCookie(f.cookie)
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var p model.Product
	require.NoError(t, json.Unmarshal(decode(t, rec)["product"], &p))
	assert.Equal(t, cat.ID, p.Collection.ID)
	assert.Equal(t, "Running", p.Collection.Name)
	require.Len(t, p.Photos, 2)
	require.Len(t, p.Sizes, 1)

	all, _ := json.Marshal(model.PhotosUpdate{Photos: p.Photos})
	rec = f.do(t, http.MethodPatch, "/product/updatePhotos/"+p.ID, string(all))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	one, _ := json.Marshal(model.PhotosUpdate{Photos: p.Photos[:1]})
	rec = f.do(t, http.MethodPatch, "/product/updatePhotos/"+p.ID, string(one))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/product/list?categoryId=other", "")
	assert.JSONEq(t, `[]`, string(decode(t, rec)["products"]))
	rec = f.do(t, http.MethodGet, "/product/list?categoryId="+cat.ID, "")
	var products []model.Product
	require.NoError(t, json.Unmarshal(decode(t, rec)["products"], &products))
	require.Len(t, products, 1)
	assert.Len(t, products[0].Photos, 1)
}

func TestTotalSales(t *testing.T) {
	f := newFixture(t)
	now := time.Now().UTC()
	f.store.AddOrder(model.Order{Amount: 100, Timestamps: model.Timestamps{CreatedAt: now.AddDate(0, 0, -2).Format(time.RFC3339)}})
	f.store.AddOrder(model.Order{Amount: 250, Timestamps: model.Timestamps{CreatedAt: now.AddDate(0, -2, 0).Format(time.RFC3339)}})

	tests := []struct {
		query string
		want  string
	}{
		{"", `[{"totalSales":350}]`},
		{"?range=last7days", `[{"totalSales":100}]`},
		{"?range=last6months", `[{"totalSales":350}]`},
	}
	for _, tt := range tests {
		rec := f.do(t, http.MethodGet, "/order/total-sales"+tt.query, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, tt.want, string(decode(t, rec)["sales"]), tt.query)
	}

	rec := f.do(t, http.MethodGet, "/order/total-sales?range=forever", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderUpdateValidatesStatus(t *testing.T) {
	f := newFixture(t)
	o := f.store.AddOrder(model.Order{Address: "1 Main St", PhoneNumber: "9876543210", Amount: 10})

	rec := f.do(t, http.MethodPatch, "/order/update/"+o.ID, `{"address":"1 Main St","phoneNumber":"9876543210","status":"LOST"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPatch, "/order/update/"+o.ID, `{"address":"2 Main St","phoneNumber":"9876543210","status":"SHIPPED"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var got model.Order
	require.NoError(t, json.Unmarshal(decode(t, rec)["order"], &got))
	assert.Equal(t, model.OrderShipped, got.Status)
	assert.Equal(t, "2 Main St", got.Address)
}

func TestSeed(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.Seed("owner@sneakerx.test", "owner123"))

	assert.Len(t, store.categories, 3)
	assert.Len(t, store.products, 8)
	assert.Len(t, store.coupons, 2)
	require.Len(t, store.orders, 4)

	total, n := store.salesSince(rangeStart(time.Now(), model.SalesLast7Days))
	assert.Equal(t, 1, n)
	assert.Equal(t, store.orders[0].Amount, total)

	_, ok := store.findAccountByEmail("owner@sneakerx.test")
	assert.True(t, ok)
	assert.ErrorIs(t, store.Seed("owner@sneakerx.test", "owner123"), ErrUserExists)
}

package dashboard

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/karanch577/sneakerx-admin/internal/apiclient"
	"github.com/karanch577/sneakerx-admin/internal/mockapi"
	"github.com/karanch577/sneakerx-admin/internal/model"
	"github.com/karanch577/sneakerx-admin/internal/notify"
	"github.com/karanch577/sneakerx-admin/internal/query"
	"github.com/karanch577/sneakerx-admin/internal/session"
	"github.com/karanch577/sneakerx-admin/pkg/config"
	"github.com/karanch577/sneakerx-admin/pkg/jwtutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store *mockapi.Store
	feed  *notify.Feed
	dash  *Dashboard
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := mockapi.NewStore()
	jwt := jwtutil.NewJWTUtil(&config.JWTConfig{SigningKey: "test-key", ExpirationHours: 1})
	srv := httptest.NewServer(mockapi.New(store, jwt))
	t.Cleanup(srv.Close)

	_, err := store.AddAccount("Admin", "admin@sneakerx.test", "secret1", model.RoleAdmin)
	require.NoError(t, err)
	_, err = store.AddAccount("Shopper", "shopper@sneakerx.test", "secret1", "USER")
	require.NoError(t, err)

	client, err := apiclient.New(srv.URL + mockapi.BasePath)
	require.NoError(t, err)
	api := apiclient.NewAPI(client)

	flags := session.NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	guard := session.NewGuard(api.Users, session.NewUserState(), flags, nil)
	feed := notify.NewFeed(0)

	dash := New(api, guard, query.NewClient(nil), feed, nil, Options{PageSize: 2})
	t.Cleanup(dash.Close)

	_, err = dash.Session.SignIn.Execute(context.Background(), model.Credentials{Email: "admin@sneakerx.test", Password: "secret1"})
	require.NoError(t, err)
	return &fixture{store: store, feed: feed, dash: dash}
}

func (f *fixture) titles() []string {
	var out []string
	for _, n := range f.feed.Drain() {
		out = append(out, n.Title)
	}
	return out
}

func (f *fixture) addProduct(name string, category model.Category, photos ...string) model.Product {
	p := model.Product{
		Name:         name,
		Price:        12000,
		SellingPrice: 9999,
		Description:  "Classic runner",
		ColourShown:  "White",
		Style:        "ST-" + name,
		Collection:   model.CollectionRef{ID: category.ID, Name: category.Name},
		Sizes:        []model.StockSize{{Size: "US 9", Quantity: 3}, {Size: "US 10", Quantity: 2}},
		Sold:         []model.SizeQuantity{{Size: "US 10", Quantity: 1}},
	}
	for _, url := range photos {
		p.Photos = append(p.Photos, model.Photo{SecureURL: url})
	}
	return f.store.AddProduct(p)
}

func TestCategories_EmptyThenAdd(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cats := f.dash.Categories

	require.NoError(t, cats.Screen.List.Load(ctx))
	v := cats.Screen.View()
	assert.Equal(t, "success", v.Status)
	assert.Equal(t, []string{"Name", "Created At", "Updated At"}, v.Headers)
	assert.Empty(t, v.Rows)
	assert.Equal(t, EmptyText, v.Empty)

	cats.Form.Set(model.CategoryInput{Name: "Sneakers"})
	_, err := cats.Add.Execute(ctx, cats.Form.Value())
	require.NoError(t, err)

	assert.Equal(t, []string{"Sneakers successfully added"}, f.titles())
	assert.Equal(t, model.CategoryInput{}, cats.Form.Value())

	v = cats.Screen.View()
	require.Len(t, v.Rows, 1)
	assert.Equal(t, "Sneakers", v.Rows[0].Cells[0])
	assert.Regexp(t, `^\d{2}-\d{2}-\d{4}$`, v.Rows[0].Cells[1])
	assert.Empty(t, v.Empty)
}

func TestCategories_UpdateAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.store.AddCategory("Runners")

	_, err := f.dash.Categories.Update.Execute(ctx, Change[model.CategoryInput]{ID: c.ID, Input: model.CategoryInput{Name: "Trail"}})
	require.NoError(t, err)

	_, err = f.dash.Categories.Update.Execute(ctx, Change[model.CategoryInput]{ID: c.ID, Input: model.CategoryInput{Name: "T"}})
	assert.ErrorIs(t, err, model.ErrTooShort)

	_, err = f.dash.Categories.Delete.Execute(ctx, c.ID)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Trail updated successfully",
		"name must be at least 2 characters",
		"Category deleted successfully",
	}, f.titles())
}

func TestProducts_CategoryFilter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	road := f.store.AddCategory("Road")
	trail := f.store.AddCategory("Trail")
	f.addProduct("Pegasus", road, "a")
	f.addProduct("Vomero", road, "b")
	f.addProduct("Invincible", road, "c")
	f.addProduct("Wildhorse", trail, "d")

	list := f.dash.Products.Screen.List
	require.NoError(t, list.Load(ctx))
	require.NoError(t, list.Next(ctx))
	assert.Equal(t, 2, list.Page())

	require.NoError(t, f.dash.Products.FilterByCategory(ctx, trail.ID))
	st := list.State()
	assert.Equal(t, 1, list.Page())
	require.Len(t, st.Items, 1)
	assert.Equal(t, "Wildhorse", st.Items[0].Name)
	assert.Equal(t, "categoryId="+trail.ID, st.Key.Filters)

	require.NoError(t, f.dash.Products.FilterByCategory(ctx, query.FilterAll))
	st = list.State()
	assert.Len(t, st.Items, 2)
	assert.Equal(t, 2, st.TotalPages)

	options, err := f.dash.Products.Categories(ctx)
	require.NoError(t, err)
	assert.Len(t, options, 2)
}

func TestProducts_UpdateRejectsRemovingEveryPhoto(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.addProduct("Pegasus", f.store.AddCategory("Road"), "a", "b")

	current, form, err := f.dash.Products.EditForm(ctx, p.ID)
	require.NoError(t, err)

	_, err = f.dash.Products.Update.Execute(ctx, ProductUpdate{ID: p.ID, Current: current, RemovePhotos: current.Photos, Form: form})
	require.ErrorIs(t, err, model.ErrLastPhoto)
	assert.Equal(t, []string{"Can't remove all the photo, keep atleast one"}, f.titles())

	after, err := f.dash.Products.Detail(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, after.Photos, 2)
}

func TestProducts_UpdateWithPhotoRemoval(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.addProduct("Pegasus", f.store.AddCategory("Road"), "a", "b")

	current, form, err := f.dash.Products.EditForm(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []model.SizeQuantity{{Size: "US 10", Quantity: 1}, {Size: "US 9", Quantity: 0}}, form.Sold)

	form.Name = "Pegasus 41"
	out, err := f.dash.Products.Update.Execute(ctx, ProductUpdate{ID: p.ID, Current: current, RemovePhotos: current.Photos[:1], Form: form})
	require.NoError(t, err)
	assert.Equal(t, "Pegasus 41", out.Name)
	assert.Equal(t, []model.Photo{{SecureURL: "b"}}, out.Photos)
	assert.Equal(t, []string{"Pegasus 41 updated successfully"}, f.titles())
}

func TestProducts_Add(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.store.AddCategory("Road")
	products := f.dash.Products
	require.NoError(t, products.Screen.List.Load(ctx))

	form := model.ProductForm{
		Name:         "Sneakers",
		Price:        12000,
		SellingPrice: 9999,
		CollectionID: c.ID,
		Description:  "Classic runner",
		ColourShown:  "White",
		Style:        "SN-1",
		Sizes:        []model.SizeQuantity{{Size: "US 9", Quantity: 2}},
		Files:        []model.Upload{{Filename: "side.jpg", Content: strings.NewReader("jpeg")}},
	}
	products.Form.Set(form)
	out, err := products.Add.Execute(ctx, form)
	require.NoError(t, err)
	assert.Len(t, out.Photos, 1)
	assert.Equal(t, []string{"Sneakers successfully added"}, f.titles())
	assert.Equal(t, model.ProductForm{}, products.Form.Value())
	assert.Len(t, products.Screen.List.State().Items, 1)
}

func TestOrders_DeleteByRowID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	buyer := &model.OrderUser{ID: "u1", Name: "Asha"}
	first := f.store.AddOrder(model.Order{User: buyer, Amount: 100, Products: []model.OrderedProduct{{ProductID: "p1", Count: 1}}})
	second := f.store.AddOrder(model.Order{User: buyer, Amount: 250.5, TransactionStatus: "PAID"})

	orders := f.dash.Orders
	require.NoError(t, orders.Screen.List.Load(ctx))
	v := orders.Screen.View()
	require.Len(t, v.Rows, 2)
	assert.Equal(t, []string{"Asha", "1", "ORDERED", "100"}, v.Rows[0].Cells[:4])
	assert.Equal(t, "250.5", v.Rows[1].Cells[3])

	_, err := orders.Delete.Execute(ctx, v.Rows[1].ID)
	require.NoError(t, err)

	v = orders.Screen.View()
	require.Len(t, v.Rows, 1)
	assert.Equal(t, first.ID, v.Rows[0].ID)
	assert.NotEqual(t, second.ID, v.Rows[0].ID)
	assert.Equal(t, []string{"Order deleted successfully"}, f.titles())
}

func TestOrders_DetailAndUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.addProduct("Pegasus", f.store.AddCategory("Road"), "a")
	o := f.store.AddOrder(model.Order{
		User:     &model.OrderUser{ID: "u1", Name: "Asha"},
		Products: []model.OrderedProduct{{ProductID: p.ID, Size: "US 9", Count: 1}, {ProductID: "missing", Size: "US 10", Count: 2}},
	})

	detail, err := f.dash.Orders.Detail(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "Asha", detail.Order.OrderBy)
	assert.Equal(t, 2, detail.Order.NoOfProducts)
	require.Len(t, detail.Lines, 2)
	require.NotNil(t, detail.Lines[0].Product)
	assert.Equal(t, "Pegasus", detail.Lines[0].Product.Name)
	assert.Nil(t, detail.Lines[1].Product)
	assert.Equal(t, "Product not found", detail.Lines[1].Error)

	_, err = f.dash.Orders.Update.Execute(ctx, Change[model.OrderUpdate]{ID: o.ID, Input: model.OrderUpdate{
		Address: "12 Main St", PhoneNumber: "9876543210", Status: model.OrderShipped,
	}})
	require.NoError(t, err)
	assert.Equal(t, []string{"order updated successfully"}, f.titles())
}

func TestUsers_RolesAndAdd(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	roles, err := f.dash.Users.Roles(ctx)
	require.NoError(t, err)
	assert.Equal(t, mockapi.Roles, roles)

	_, err = f.dash.Users.Add.Execute(ctx, model.UserInput{Name: "Ravi", Email: "ravi@sneakerx.test", Role: "USER"})
	assert.ErrorIs(t, err, model.ErrPasswordTooShort)

	u, err := f.dash.Users.Add.Execute(ctx, model.UserInput{Name: "Ravi", Email: "ravi@sneakerx.test", Password: "secret1", Role: "USER"})
	require.NoError(t, err)

	_, err = f.dash.Users.Update.Execute(ctx, Change[model.UserInput]{ID: u.ID, Input: model.UserInput{Name: "Ravi K", Email: "ravi@sneakerx.test", Role: "ADMIN"}})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"password must be at least 6 characters",
		"Ravi successfully added",
		"Ravi K updated successfully",
	}, f.titles())
}

func TestOverview(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.store.AddOrder(model.Order{Amount: 120})
	f.store.AddOrder(model.Order{Amount: 80, Timestamps: model.Timestamps{CreatedAt: "2001-01-01T00:00:00.000Z"}})

	sales, err := f.dash.Overview.Sales(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, model.SalesLast7Days, sales.Range)
	assert.Equal(t, 200.0, sales.Overall.TotalSales)
	assert.Equal(t, 120.0, sales.InRange.TotalSales)

	_, err = f.dash.Overview.Sales(ctx, "forever")
	assert.ErrorIs(t, err, ErrUnknownRange)

	require.NoError(t, f.dash.Overview.Users.List.Load(ctx))
	assert.Len(t, f.dash.Overview.Users.View().Rows, 2)
}

func TestSession_NonAdminRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.dash.Session.SignOut.Execute(ctx, struct{}{})
	require.NoError(t, err)

	_, err = f.dash.Session.SignIn.Execute(ctx, model.Credentials{Email: "shopper@sneakerx.test", Password: "secret1"})
	assert.ErrorIs(t, err, session.ErrNotAdmin)
	assert.Equal(t, []string{"Logged out successfully", "Only admin can access the dashboard"}, f.titles())
	assert.Equal(t, session.RedirectToLogin, f.dash.Session.Guard.Enter(ctx))
}

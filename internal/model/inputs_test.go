package model

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputValidation(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{"category ok", CategoryInput{Name: "Sneakers"}.Validate(), nil},
		{"category short", CategoryInput{Name: "S"}.Validate(), ErrTooShort},
		{"coupon discount high", CouponCreate{Name: "SALE10", Discount: 101}.Validate(), ErrDiscountOutOfRange},
		{"coupon discount negative", CouponUpdate{Code: "SALE10", Discount: -1}.Validate(), ErrDiscountOutOfRange},
		{"coupon ok", CouponUpdate{Code: "SALE10", Discount: 100, Active: true}.Validate(), nil},
		{"order bad status", OrderUpdate{Address: "12 Main St", PhoneNumber: "9876543210", Status: "LOST"}.Validate(), ErrInvalidOrderStatus},
		{"order bad phone", OrderUpdate{Address: "12 Main St", PhoneNumber: "123", Status: OrderShipped}.Validate(), ErrInvalidPhoneNumber},
		{"order ok", OrderUpdate{Address: "12 Main St", PhoneNumber: "9876543210", Status: OrderShipped}.Validate(), nil},
		{"user create no password", UserInput{Name: "Asha", Email: "asha@sneakerx.test", Role: "ADMIN"}.ValidateCreate(), ErrPasswordTooShort},
		{"user update no password", UserInput{Name: "Asha", Email: "asha@sneakerx.test", Role: "ADMIN"}.ValidateUpdate(), nil},
		{"user bad email", UserInput{Name: "Asha", Email: "nope", Role: "ADMIN"}.ValidateUpdate(), ErrInvalidEmail},
		{"credentials ok", Credentials{Email: "admin@sneakerx.test", Password: "secret1"}.Validate(), nil},
		{"signup short name", SignUp{Name: "A", Email: "a@sneakerx.test", Password: "secret1"}.Validate(), ErrTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.wantErr == nil {
				assert.NoError(t, tt.err)
				return
			}
			assert.True(t, errors.Is(tt.err, tt.wantErr), "got %v", tt.err)
		})
	}
}

func validProductForm() ProductForm {
	return ProductForm{
		Name:         "Air Max 90",
		Price:        12000,
		SellingPrice: 9999,
		CollectionID: "cat-1",
		Description:  "Classic runner",
		ColourShown:  "White/Black",
		Style:        "AM90-001",
		Sizes:        []SizeQuantity{{Size: "US 9", Quantity: 4}, {Size: "US 10", Quantity: 0}},
	}
}

func TestProductForm_Validate(t *testing.T) {
	require.NoError(t, validProductForm().Validate())

	f := validProductForm()
	f.Price = 0
	assert.ErrorIs(t, f.Validate(), ErrNonPositivePrice)

	f = validProductForm()
	f.Sizes = append(f.Sizes, SizeQuantity{Size: "EU 42", Quantity: 1})
	assert.ErrorIs(t, f.Validate(), ErrUnknownSize)

	f = validProductForm()
	f.Sold = []SizeQuantity{{Size: "US 9", Quantity: -2}}
	assert.ErrorIs(t, f.Validate(), ErrNegativeQuantity)
}

func TestProductForm_WriteMultipart(t *testing.T) {
	f := validProductForm()
	f.Sold = []SizeQuantity{{Size: "US 9", Quantity: 1}}
	f.Files = []Upload{{Filename: "side.jpg", Content: strings.NewReader("jpeg-bytes")}}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, f.WriteMultipart(w))
	require.NoError(t, w.Close())

	r := multipart.NewReader(&buf, w.Boundary())
	form, err := r.ReadForm(1 << 20)
	require.NoError(t, err)

	assert.Equal(t, []string{"Air Max 90"}, form.Value["name"])
	assert.Equal(t, []string{"12000"}, form.Value["price"])
	assert.Equal(t, []string{"cat-1"}, form.Value["collectionId"])
	assert.Equal(t, []string{"US 9"}, form.Value["sizes[0][size]"])
	assert.Equal(t, []string{"4"}, form.Value["sizes[0][quantity]"])
	assert.Equal(t, []string{"US 10"}, form.Value["sizes[1][size]"])
	assert.Equal(t, []string{"1"}, form.Value["sold[0][quantity]"])

	require.Len(t, form.File["files"], 1)
	fh := form.File["files"][0]
	assert.Equal(t, "side.jpg", fh.Filename)
	file, err := fh.Open()
	require.NoError(t, err)
	defer file.Close()
	content, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(content))

	decoded, err := ReadProductForm(form)
	require.NoError(t, err)
	f.Files = nil
	assert.Equal(t, f, decoded)
}

func TestReadProductForm_BadNumber(t *testing.T) {
	form := &multipart.Form{Value: map[string][]string{"price": {"12k"}}}
	_, err := ReadProductForm(form)
	assert.EqualError(t, err, "price must be a number")
}

func TestCheckPhotoRemoval(t *testing.T) {
	p := Product{Photos: []Photo{{SecureURL: "a"}, {SecureURL: "b"}, {SecureURL: "c"}}}

	assert.NoError(t, CheckPhotoRemoval(p, nil))
	assert.NoError(t, CheckPhotoRemoval(p, p.Photos[:2]))

	err := CheckPhotoRemoval(p, p.Photos)
	require.ErrorIs(t, err, ErrLastPhoto)
	assert.Equal(t, "Can't remove all the photo, keep atleast one", err.Error())
}

func TestCheckPhotoRemoval_CountsDistinctOwnedPhotos(t *testing.T) {
	two := Product{Photos: []Photo{{SecureURL: "a"}, {SecureURL: "b"}}}
	assert.NoError(t, CheckPhotoRemoval(two, []Photo{{SecureURL: "a"}, {SecureURL: "a"}}))
	assert.NoError(t, CheckPhotoRemoval(two, []Photo{{SecureURL: "a"}, {SecureURL: "zzz"}}))
	assert.ErrorIs(t, CheckPhotoRemoval(two, []Photo{{SecureURL: "b"}, {SecureURL: "a"}, {SecureURL: "b"}}), ErrLastPhoto)

	one := Product{Photos: []Photo{{SecureURL: "a"}}}
	assert.NoError(t, CheckPhotoRemoval(one, []Photo{{SecureURL: "zzz"}}))
	assert.ErrorIs(t, CheckPhotoRemoval(one, []Photo{{SecureURL: "a"}}), ErrLastPhoto)
}

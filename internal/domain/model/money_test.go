package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		in      string
		want    Money
		wantErr bool
	}{
		{in: "10", want: 1000},
		{in: "10.5", want: 1050},
		{in: "10.50", want: 1050},
		{in: "0.99", want: 99},
		{in: ".5", want: 50},
		{in: "-3.25", want: -325},
		{in: "1.005", want: 101},
		{in: "1.004", want: 100},
		{in: "", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "1.", wantErr: true},
		{in: "1.2x", wantErr: true},
		{in: "--1", wantErr: true},
		{in: "92233720368547757.99", want: Money(9223372036854775799)},
		{in: "92233720368547758", wantErr: true},
		{in: "100000000000000000", wantErr: true},
		{in: "-100000000000000000.00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMoney(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidMoney)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMoney_String(t *testing.T) {
	assert.Equal(t, "36.50", Money(3650).String())
	assert.Equal(t, "0.05", Money(5).String())
	assert.Equal(t, "-1.20", Money(-120).String())
}

func TestMoney_Percent_RoundsHalfUp(t *testing.T) {
	assert.Equal(t, Money(365), Money(3650).Percent(10))
	assert.Equal(t, Money(548), Money(3650).Percent(15))
	assert.Equal(t, Money(0), Money(3650).Percent(0))
	assert.Equal(t, Money(3650), Money(3650).Percent(100))
}

func TestMoney_JSON(t *testing.T) {
	var p Product
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"price":10.5,"stockQuantity":3}`), &p))
	assert.Equal(t, Money(1050), p.Price)

	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"price":"24.99"}`), &p))
	assert.Equal(t, Money(2499), p.Price)

	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"price":1e1}`), &p))
	assert.Equal(t, Money(1000), p.Price)

	assert.Error(t, json.Unmarshal([]byte(`{"price":"ten"}`), &p))

	out, err := json.Marshal(OrderRequest{TotalAmount: 4785})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"totalAmount":47.85`)
}

func TestProduct_UnmarshalJSON_NegativePrice(t *testing.T) {
	var p Product
	err := json.Unmarshal([]byte(`{"id":7,"name":"Refund","price":-3.25}`), &p)
	assert.ErrorIs(t, err, ErrInvalidMoney)
	assert.Equal(t, Product{}, p)

	var items []ServerCartItem
	err = json.Unmarshal([]byte(`[{"product":{"id":1,"price":"-10.00"},"quantity":2}]`), &items)
	assert.ErrorIs(t, err, ErrInvalidMoney)

	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"price":0}`), &p))
	assert.Equal(t, Money(0), p.Price)
}

func TestCartLine_UnmarshalJSON_KeepsQuantity(t *testing.T) {
	var l CartLine
	require.NoError(t, json.Unmarshal([]byte(`{"id":3,"name":"Mug","price":24.99,"stockQuantity":2,"quantity":2}`), &l))

	assert.Equal(t, int64(3), l.ID)
	assert.Equal(t, int64(2), l.Quantity)
	assert.Equal(t, "49.98", l.Subtotal().String())

	assert.ErrorIs(t, json.Unmarshal([]byte(`{"id":3,"price":-1,"quantity":1}`), &l), ErrInvalidMoney)
}

func TestLinesFromServer_AndCartTotal(t *testing.T) {
	items := []ServerCartItem{
		{Product: Product{ID: 1, Price: NewMoney(10, 0)}, Quantity: 2},
		{Product: Product{ID: 9, Price: NewMoney(99, 0)}, Quantity: 0},
		{Product: Product{ID: 2, Price: NewMoney(5, 50)}, Quantity: 3},
	}

	lines := LinesFromServer(items)

	require.Len(t, lines, 2)
	assert.Equal(t, int64(1), lines[0].ID)
	assert.Equal(t, int64(2), lines[1].ID)
	assert.Equal(t, "36.50", CartTotal(lines).String())
	assert.Equal(t, Money(0), CartTotal(nil))
	assert.NotNil(t, LinesFromServer(nil))
}

func TestParseRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, ParseRole("ROLE_ADMIN"))
	assert.Equal(t, RoleAdmin, ParseRole("admin"))
	assert.Equal(t, RoleUser, ParseRole(" ROLE_USER "))
	assert.Equal(t, Role(""), ParseRole("ROLE_GUEST"))
	assert.True(t, Session{Role: ParseRole("ROLE_ADMIN")}.IsAdmin())
}

func TestShippingMethod(t *testing.T) {
	assert.Equal(t, Money(1500), ShippingDHL.Cost())
	assert.Equal(t, Money(1200), ShippingDPD.Cost())
	assert.Equal(t, Money(850), ShippingPocztaPolska.Cost())
	assert.Equal(t, Money(0), ShippingMethod("UPS").Cost())
	assert.False(t, ShippingMethod("UPS").Valid())
	assert.Len(t, ShippingMethods(), 3)
}

func TestNormalizeCouponCode(t *testing.T) {
	assert.Equal(t, "SAVE10", NormalizeCouponCode("  save10 "))
	assert.Equal(t, "", NormalizeCouponCode("   "))
}

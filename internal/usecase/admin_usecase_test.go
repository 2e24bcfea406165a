package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Rafals/storefront/internal/domain/model"
	"github.com/Rafals/storefront/internal/usecase"
	"github.com/Rafals/storefront/internal/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var adminSession = model.Session{Token: "tok-admin", Username: "root", Role: model.RoleAdmin}

func newAdmin(t *testing.T, sess *model.Session) (*usecase.AdminUsecase, *AdminAPIMock, *recordingNotifier) {
	t.Helper()
	sessions, store := newSessions(t)
	if sess != nil {
		loginAs(t, store, *sess)
	}
	api := new(AdminAPIMock)
	n := &recordingNotifier{}
	return usecase.NewAdminUsecase(api, sessions, validator.NewFormValidator(), n, nil), api, n
}

// =====================
// role check
// =====================

func TestAdminUsecase_NonAdmin_AccessDenied_NoRequest(t *testing.T) {
	uc, api, n := newAdmin(t, &userSession)

	_, err := uc.ListUsers(context.Background())
	assert.ErrorIs(t, err, usecase.ErrForbidden)

	err = uc.DeleteProduct(context.Background(), 1)
	assert.ErrorIs(t, err, usecase.ErrForbidden)

	assert.Equal(t, []string{"Access Denied", "Access Denied"}, n.Errors())
	api.AssertNotCalled(t, "ListUsers", ctxAny, ctxAny)
	api.AssertNotCalled(t, "DeleteProduct", ctxAny, ctxAny, ctxAny)
}

func TestAdminUsecase_Unauthenticated_AuthRequired(t *testing.T) {
	uc, api, _ := newAdmin(t, nil)

	_, err := uc.ListCoupons(context.Background())

	assert.ErrorIs(t, err, usecase.ErrAuthRequired)
	api.AssertNotCalled(t, "ListCoupons", ctxAny, ctxAny)
}

// =====================
// users
// =====================

func TestAdminUsecase_ListUsers(t *testing.T) {
	uc, api, _ := newAdmin(t, &adminSession)

	api.On("ListUsers", ctxAny, "tok-admin").Return([]model.AdminUser{{ID: 1, Username: "root"}}, nil).Once()

	users, err := uc.ListUsers(context.Background())

	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestAdminUsecase_BanUser(t *testing.T) {
	uc, api, n := newAdmin(t, &adminSession)

	api.On("BanUser", ctxAny, "tok-admin", int64(2), 7, "spam").Return(nil).Once()

	require.NoError(t, uc.BanUser(context.Background(), 2, 7, "spam"))
	assert.Equal(t, []string{"User banned successfully"}, n.Successes())
	api.AssertExpectations(t)
}

func TestAdminUsecase_BanUser_MissingReason_NoRequest(t *testing.T) {
	uc, api, _ := newAdmin(t, &adminSession)

	err := uc.BanUser(context.Background(), 2, 7, " ")

	assert.ErrorIs(t, err, validator.ErrInvalidInput)
	api.AssertNotCalled(t, "BanUser", ctxAny, ctxAny, ctxAny, ctxAny, ctxAny)
}

func TestAdminUsecase_DeleteAndUnban(t *testing.T) {
	uc, api, _ := newAdmin(t, &adminSession)

	api.On("DeleteUser", ctxAny, "tok-admin", int64(3)).Return(nil).Once()
	api.On("UnbanUser", ctxAny, "tok-admin", int64(4)).Return(errors.New("boom")).Once()

	assert.NoError(t, uc.DeleteUser(context.Background(), 3))
	assert.Error(t, uc.UnbanUser(context.Background(), 4))
	api.AssertExpectations(t)
}

// =====================
// coupons / products
// =====================

func TestAdminUsecase_CreateCoupon_UpperCasesCode(t *testing.T) {
	uc, api, _ := newAdmin(t, &adminSession)

	api.On("CreateCoupon", ctxAny, "tok-admin", model.Coupon{Code: "SUMMER25", DiscountPercent: 25, IsActive: true}).
		Return(nil).Once()

	require.NoError(t, uc.CreateCoupon(context.Background(), " summer25 ", 25))
	api.AssertExpectations(t)
}

func TestAdminUsecase_CreateCoupon_InvalidPercent_NoRequest(t *testing.T) {
	uc, api, _ := newAdmin(t, &adminSession)

	for _, pct := range []int64{0, 101, -5} {
		err := uc.CreateCoupon(context.Background(), "X", pct)
		assert.ErrorIs(t, err, validator.ErrInvalidDiscount)
	}
	api.AssertNotCalled(t, "CreateCoupon", ctxAny, ctxAny, ctxAny)
}

func TestAdminUsecase_DeleteCouponAndProduct(t *testing.T) {
	uc, api, n := newAdmin(t, &adminSession)

	api.On("DeleteCoupon", ctxAny, "tok-admin", int64(9)).Return(nil).Once()
	api.On("DeleteProduct", ctxAny, "tok-admin", int64(1)).Return(nil).Once()

	require.NoError(t, uc.DeleteCoupon(context.Background(), 9))
	require.NoError(t, uc.DeleteProduct(context.Background(), 1))
	assert.Equal(t, []string{"Coupon deleted", "Product deleted successfully"}, n.Successes())
}

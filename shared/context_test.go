package shared_test

import (
	"context"
	"rental/shared"
	"rental/shared/constant"
	"rental/shared/dto"
	"strings"
	"testing"
)

func TestConvertStringToInt(t *testing.T) {
	if got, err := shared.ConvertStringToInt(" 42 "); err != nil || got != 42 {
		t.Errorf("expected 42, got %d (%v)", got, err)
	}

	if _, err := shared.ConvertStringToInt("four"); err == nil {
		t.Error("expected error for non numeric input")
	}
}

func TestBuildCacheKey(t *testing.T) {
	if got := shared.BuildCacheKey("unit:get", "abc"); got != "unit:get:abc" {
		t.Errorf("expected unit:get:abc, got %s", got)
	}

	if got := shared.BuildCacheKey("unit:gets"); got != "unit:gets" {
		t.Errorf("expected unit:gets, got %s", got)
	}
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10}
	filter := shared.FilterByID("1", "id", "units")

	first := shared.BuildCacheKeyWithQuery("unit:gets", params, filter)
	second := shared.BuildCacheKeyWithQuery("unit:gets", params, filter)

	if first != second {
		t.Errorf("expected stable key, got %s and %s", first, second)
	}

	if !strings.HasPrefix(first, "unit:gets:") {
		t.Errorf("expected prefix unit:gets:, got %s", first)
	}

	other := shared.BuildCacheKeyWithQuery("unit:gets", dto.QueryParams{Page: 2, Limit: 10}, filter)
	if other == first {
		t.Error("expected different key for different page")
	}
}

func TestUsername(t *testing.T) {
	if got := shared.Username(context.Background()); got != constant.ContextGuest {
		t.Errorf("expected guest, got %s", got)
	}

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "u-1")
	if got := shared.Username(ctx); got != "u-1" {
		t.Errorf("expected u-1, got %s", got)
	}
}

func TestAnd(t *testing.T) {
	group := shared.And(
		shared.Eq("bookings", "unit_id", "unit-1"),
		shared.Eq("bookings", "is_owner_booking", true),
	)

	where, args := group.GetWhereClause()

	expected := "(bookings.unit_id = :unit_id AND bookings.is_owner_booking = :is_owner_booking)"
	if where != expected {
		t.Errorf("expected %s, got %s", expected, where)
	}

	if args["unit_id"] != "unit-1" || args["is_owner_booking"] != true {
		t.Errorf("unexpected args %v", args)
	}
}

func TestAndSkipsEmptyGroups(t *testing.T) {
	group := shared.And(dto.FilterGroup{}, shared.Eq("units", "owner_id", "owner-1"))

	where, _ := group.GetWhereClause()

	expected := "(units.owner_id = :owner_id)"
	if where != expected {
		t.Errorf("expected %s, got %s", expected, where)
	}
}

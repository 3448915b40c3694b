package models

import (
	"reflect"
	"strings"
	"testing"
)

func TestRewardTransactionEnumCoversAllLedgerTypes(t *testing.T) {
	field, ok := reflect.TypeOf(RewardTransaction{}).FieldByName("Type")
	if !ok {
		t.Fatal("RewardTransaction has no Type field")
	}
	tag := field.Tag.Get("gorm")
	for _, typ := range []string{TxTaskReward, TxJoiningBonus, TxReferralBonus} {
		if !strings.Contains(tag, "'"+typ+"'") {
			t.Fatalf("ledger type %q missing from column enum %q", typ, tag)
		}
	}
}

func TestLedgerTypesAreDistinct(t *testing.T) {
	seen := map[string]bool{}
	for _, typ := range []string{TxTaskReward, TxJoiningBonus, TxReferralBonus} {
		if seen[typ] {
			t.Fatalf("duplicate ledger type %q", typ)
		}
		seen[typ] = true
	}
}

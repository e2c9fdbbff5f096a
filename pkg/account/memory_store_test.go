package account_test

import (
	"testing"

	"github.com/dmitrymomot/authgate/pkg/account"
	"github.com/dmitrymomot/authgate/pkg/account/accounttest"
)

func TestMemoryStore_Contract(t *testing.T) {
	accounttest.Run(t, func(t *testing.T) account.Store {
		return account.NewMemoryStore()
	})
}

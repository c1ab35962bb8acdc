package service

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// dailyRate18 is 1.8% per year on a 360-day basis
var dailyRate18 = decimal.RequireFromString("0.00005")

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// decEq matches a decimal argument by value rather than representation
func decEq(want string) interface{} {
	w := decimal.RequireFromString(want)
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(w) })
}

// newTransactionMocks wires a factory returning one unit of work that expects
// Begin and a deferred Rollback.
func newTransactionMocks() (*MockUnitOfWorkFactory, *MockUnitOfWork) {
	factory := new(MockUnitOfWorkFactory)
	uow := NewMockUnitOfWork()
	factory.On("Create").Return(uow)
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Rollback").Return(nil)
	return factory, uow
}

package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"connectrpc.com/connect"

	"github.com/mmynk/pokerledger/internal/access"
	"github.com/mmynk/pokerledger/internal/auth"
	"github.com/mmynk/pokerledger/internal/ledger"
	"github.com/mmynk/pokerledger/internal/middleware"
	"github.com/mmynk/pokerledger/internal/storage"
)

var (
	// errLastOwner is returned when a change would leave a group without an owner.
	errLastOwner = errors.New("a group must keep at least one owner")

	// errNotFound is the one message reported for both missing resources and
	// resources in groups the caller cannot see.
	errNotFound = errors.New("not found")

	errInternal = errors.New("internal error")
)

// Response metadata set on unbalanced close attempts (values in cents).
const (
	headerTotalBuyIns = "Ledger-Total-Buy-Ins"
	headerSettledOut  = "Ledger-Settled-Out"
	headerDifference  = "Ledger-Difference"
)

// invalidArgument builds an InvalidArgument error with msg.
func invalidArgument(msg string) error {
	return connect.NewError(connect.CodeInvalidArgument, errors.New(msg))
}

// connectError maps a domain error onto a Connect error. Errors without a
// domain meaning are logged and returned as Internal without detail.
func connectError(logger *slog.Logger, op string, err error) error {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr
	}

	var unbalanced *ledger.UnbalancedError
	switch {
	case errors.As(err, &unbalanced):
		cerr := connect.NewError(connect.CodeFailedPrecondition, err)
		b := unbalanced.Balance
		cerr.Meta().Set(headerTotalBuyIns, strconv.FormatInt(b.TotalBuyIns.Cents(), 10))
		cerr.Meta().Set(headerSettledOut, strconv.FormatInt(b.SettledOut.Cents(), 10))
		cerr.Meta().Set(headerDifference, strconv.FormatInt(b.Difference.Cents(), 10))
		return cerr

	case errors.Is(err, ledger.ErrInvalidAmount),
		errors.Is(err, ledger.ErrInvalidName):
		return connect.NewError(connect.CodeInvalidArgument, err)

	case errors.Is(err, ledger.ErrPlayerInactive),
		errors.Is(err, ledger.ErrTableClosed),
		errors.Is(err, ledger.ErrUnbalancedTable),
		errors.Is(err, errLastOwner):
		return connect.NewError(connect.CodeFailedPrecondition, err)

	case errors.Is(err, ledger.ErrDuplicateConflict),
		errors.Is(err, storage.ErrConflict):
		return connect.NewError(connect.CodeAlreadyExists, err)

	case errors.Is(err, access.ErrForbidden):
		logger.Debug(op+" denied", "error", err)
		return connect.NewError(connect.CodePermissionDenied, access.ErrForbidden)

	case errors.Is(err, access.ErrNotVisible),
		errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, errNotFound)
	}

	logger.Error(op+" failed", "error", err)
	return connect.NewError(connect.CodeInternal, errInternal)
}

// requireActor returns the authenticated caller.
func requireActor(ctx context.Context) (access.Actor, error) {
	actor := middleware.GetActor(ctx)
	if actor.UserID == "" {
		return actor, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return actor, nil
}

package user

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/akruglov/escrow-bot/internal/domain/entity"
	errs "github.com/akruglov/escrow-bot/internal/domain/error"
)

var (
	reNumericID = regexp.MustCompile(`^\d{5,15}$`)
	reHandle    = regexp.MustCompile(`^[a-z0-9_]{5,32}$`)
)

// ResolveUser maps a free-form identifier to a known user. Accepted inputs:
// a numeric Telegram id (5-15 digits), "@handle", a bare handle, or a
// t.me/telegram.me link. Handles are matched case-insensitively. The user
// must have contacted the bot at least once, otherwise ErrUserNotFound.
func (u *UserUseCase) ResolveUser(ctx context.Context, query string) (*entity.User, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errs.ErrUserNotFound
	}

	if reNumericID.MatchString(query) {
		id, err := strconv.ParseInt(query, 10, 64)
		if err != nil {
			return nil, errs.ErrUserNotFound
		}
		return u.userRepo.GetByID(ctx, id)
	}

	handle, ok := normalizeQuery(query)
	if !ok {
		return nil, errs.ErrUserNotFound
	}
	return u.userRepo.FindByHandle(ctx, handle)
}

// normalizeQuery reduces "@handle" and t.me-style links to a bare lowercase
// handle and validates its shape
func normalizeQuery(query string) (string, bool) {
	s := query
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimPrefix(s, "t.me/")
	s = strings.TrimPrefix(s, "telegram.me/")
	if i := strings.LastIndex(s, "/"); i >= 0 {
		s = s[i+1:]
	}
	if i := strings.Index(s, "?"); i >= 0 {
		s = s[:i]
	}
	s = entity.NormalizeHandle(s)

	if !reHandle.MatchString(s) {
		return "", false
	}
	return s, true
}

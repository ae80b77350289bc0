package service

import (
	"errors"
	"fmt"

	"cost-calc-api/internal/repository"
	"cost-calc-api/internal/ws"
	"cost-calc-api/pkg/validator"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrMaterialNotFound   = errors.New("material not found")
	ErrMenuNotFound       = errors.New("menu not found")
	ErrRecipeNotFound     = errors.New("recipe not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
)

// Publisher receives change events after successful writes.
type Publisher interface {
	Publish(ev ws.Event)
}

type nopPublisher struct{}

func (nopPublisher) Publish(ws.Event) {}

func publisherOrNop(p Publisher) Publisher {
	if p == nil {
		return nopPublisher{}
	}
	return p
}

func validate(req interface{}) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrValidation, validator.Summary(errs))
	}
	return nil
}

// translate maps repository not-found errors onto the domain sentinel.
func translate(err, notFound error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return notFound
	}
	return err
}

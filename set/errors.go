package set

import (
	"reflect"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidArgument is returned when a required argument is nil.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrOutOfRange is returned for negative indexes.
	ErrOutOfRange = errors.New("index out of range")
	// ErrInsufficientCapacity is returned when a destination cannot hold the set.
	ErrInsufficientCapacity = errors.New("insufficient capacity")
)

func validate(arg any, name string) error {
	if isNil(arg) {
		return errors.Wrapf(ErrInvalidArgument, "%s must not be nil", name)
	}
	return nil
}

func isNil(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func,
		reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}

package window

import (
	"errors"
	"fmt"
)

var (
	errEmptyCoeffs = errors.New("window coefficients must not be empty")
	errZeroSum     = errors.New("window coefficients sum to zero")
)

func validateLength(size int) error {
	if size <= 0 {
		return fmt.Errorf("window size must be > 0: %d", size)
	}
	return nil
}

func validateOddLength(size int) error {
	if err := validateLength(size); err != nil {
		return err
	}
	if size%2 == 0 {
		return fmt.Errorf("window size must be odd: %d", size)
	}
	return nil
}

func validateGauss(size int, sigma float64) error {
	if err := validateLength(size); err != nil {
		return err
	}
	if !(sigma > 0) {
		return fmt.Errorf("gauss sigma must be > 0: %f", sigma)
	}
	return nil
}

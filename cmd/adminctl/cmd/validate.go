package cmd

import (
	"fmt"

	pkgvalidator "github.com/venue-master/admin-console/pkg/validator"
	usermodels "github.com/venue-master/admin-console/services/user/domain/models"
)

func validateRoles(in usermodels.RolesUpdate) error {
	if err := pkgvalidator.Validate(&in); err != nil {
		return fmt.Errorf("invalid roles: %v", pkgvalidator.FormatValidationErrors(err))
	}
	return nil
}

package core

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"devkit-builder/internal/shared"
	"devkit-builder/internal/types"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type FamilyValidator struct {
	validate *validator.Validate
}

func NewFamilyValidator() FamilyValidator {
	return FamilyValidator{validate: validator.New()}
}

func (v FamilyValidator) ValidateFamilies(ctx context.Context, families []types.Family) error {
	if len(families) == 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("no devkit families defined")
	}
	seen := map[string]struct{}{}
	for _, family := range families {
		if err := v.ValidateFamily(ctx, family); err != nil {
			return err
		}
		if _, ok := seen[family.Name]; ok {
			return errbuilder.New().
				WithCode(errbuilder.CodeAlreadyExists).
				WithMsg(fmt.Sprintf("devkit family %s defined twice", family.Name))
		}
		seen[family.Name] = struct{}{}
	}
	return nil
}

func (v FamilyValidator) ValidateFamily(ctx context.Context, family types.Family) error {
	if err := v.validate.Struct(family); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("devkit family %q is invalid", family.Name)).
			WithCause(err)
	}
	if strings.ContainsAny(family.Name, `/\ `) {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("devkit family name %q must not contain separators or spaces", family.Name))
	}
	if filepath.IsAbs(family.UmbrellaHeader) {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("devkit family %s umbrella header must be relative to the include directory", family.Name))
	}
	if err := validateIdentifier(family.Name, "static_define", family.StaticDefine); err != nil {
		return err
	}
	if err := validateIdentifier(family.Name, "namespace", family.Namespace); err != nil {
		return err
	}
	if err := validateIdentifier(family.Name, "mapping_guard", family.MappingGuard); err != nil {
		return err
	}
	if family.RenamesSymbols() && len(family.OwnPrefixes) == 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("devkit family %s renames symbols but lists no own prefixes", family.Name))
	}
	if family.RenamesSymbols() && !shared.HasAnyPrefix(family.Namespace, family.OwnPrefixes) {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("devkit family %s namespace %s is not covered by an own prefix", family.Name, family.Namespace))
	}
	own := map[string]struct{}{}
	for _, prefix := range family.OwnPrefixes {
		own[prefix] = struct{}{}
	}
	for _, prefix := range family.PublicPrefixes {
		if _, ok := own[prefix]; ok {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("devkit family %s lists prefix %s as both own and public", family.Name, prefix))
		}
	}
	assert.NotEmpty(ctx, family.PackageName(), "package name must be derivable")
	log.Ctx(ctx).Debug().Str("family", family.Name).Msg("family validated")
	return nil
}

func validateIdentifier(family string, field string, value string) error {
	if value == "" || identifierPattern.MatchString(value) {
		return nil
	}
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("devkit family %s %s %q is not a C identifier", family, field, value))
}

// FindFamily returns the family called name.
func FindFamily(families []types.Family, name string) (types.Family, error) {
	for _, family := range families {
		if family.Name == name {
			return family, nil
		}
	}
	return types.Family{}, errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(fmt.Sprintf("unknown devkit family: %s", name))
}

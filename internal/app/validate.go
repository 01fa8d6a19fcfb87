package app

import "context"

func (s Service) Validate(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	families, err := s.loadFamilies(ctx, req.FamilyFile)
	if err != nil {
		return ValidateResult{}, err
	}
	names := make([]string, 0, len(families))
	for _, family := range families {
		names = append(names, family.Name)
	}
	return ValidateResult{Families: names}, nil
}

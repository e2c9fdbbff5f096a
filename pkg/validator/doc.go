// Package validator builds declarative input checks.
//
// Each rule constructor returns a Rule; Apply evaluates all of them and
// aggregates the failures into ValidationErrors, which implements error:
//
//	err := validator.Apply(
//		validator.LenBetween("username", in.Username, 3, 32, "Username must be between 3 and 32 characters."),
//		validator.Email("email", in.Email, "Email address is not valid."),
//	)
//	if ve := validator.Extract(err); ve.Has("email") {
//		// ...
//	}
package validator

// Package validator provides small, composable validation rules that
// accumulate every failure instead of stopping at the first one.
//
// A Rule couples a Check function with the ValidationError reported when the
// check fails. Apply evaluates all rules in order and returns a
// ValidationErrors value (which implements error) holding the failures in the
// same order the rules were given, so callers get a stable, complete list of
// problems in a single pass.
//
// # Usage
//
//	err := validator.Apply(
//	    validator.RequiredString("ssid", w.SSID).WithMessage("Network name (SSID) is required"),
//	    validator.When(w.Security != "nopass",
//	        validator.RequiredString("password", w.Password)),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//	    for _, msg := range verrs.Messages() {
//	        // ...
//	    }
//	}
//
// Rules hold no shared state, so the package is safe for concurrent use.
package validator

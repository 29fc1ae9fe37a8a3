// Package openapi exposes the loader and parser contracts used to read the
// OpenAPI description of the site's form endpoints. Implementations live
// under internal/openapi so kin-openapi types never leak to callers.
package openapi

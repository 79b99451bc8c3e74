package boredgpt

import "errors"

// ErrWebflowNotConfigured means IndexWebflow was called without a CMS
// token and collection in the configuration.
var ErrWebflowNotConfigured = errors.New("webflow token and collection are not configured")

// Package services implements the call-out to the external vision model.
//
// The [Extractor] interface abstracts the provider so the pipeline and
// handlers can be tested with a mock. [AnthropicService] is the production
// implementation: it base64-encodes the uploaded image, sends it to the
// Anthropic messages endpoint with [ExtractionPrompt], and returns the first
// text content block.
//
// One call per request, no retries, no rate limiting; a failed call fails
// the whole extraction. The request context is attached to the outbound
// call, so client disconnects cancel the upstream request.
//
// [ParseNames] is the companion pure function turning the model's free-text
// response into an ordered name list.
package services

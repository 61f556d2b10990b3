// Package foodlens provides an HTTP client for the food analysis API.
//
// # Overview
//
// The service accepts a single image and answers with a nutritional analysis
// of the pictured dish. This package owns the wire contract: the multipart
// upload, the response envelope, the analysis record and the error taxonomy
// the rest of the program uses to tell failures apart.
//
// # Files
//
//   - client.go: Client, multipart encoding, base URL handling
//   - envelope.go: two-stage response decoding
//   - types.go: Analysis record and placeholder-aware display helpers
//   - errors.go: Kind/Stage taxonomy and user-facing messages
//
// # Client Usage
//
//	client, err := foodlens.NewClient(cfg.APIURL,
//		foodlens.WithTimeout(cfg.RequestTimeout),
//		foodlens.WithLogger(logger),
//	)
//	if err != nil {
//		return err
//	}
//	analysis, err := client.Analyze(ctx, foodlens.Upload{
//		Name:        "pizza.jpg",
//		ContentType: "image/jpeg",
//		Data:        data,
//	})
//
// # Wire Contract
//
//	POST <api_url>/analyze-food
//	Content-Type: multipart/form-data; one part named "image"
//
//	200 OK
//	{"analysis": "{\"food_name\":\"Pizza\",\"is_veg\":false,...}"}
//
// Any status outside 2xx is a failure. The analysis field is itself a JSON
// document encoded as a string, so decoding happens in two stages:
//
//  1. DecodeEnvelope: outer object -> analysis string (StageEnvelope)
//  2. DecodeAnalysis: analysis string -> Analysis (StageRecord)
//
// Each stage fails with its own Stage so diagnostics point at the right
// layer. The inner document must be a JSON object; every field in it is
// optional.
//
// # Error Handling
//
// Analyze returns *Error values:
//
//   - KindValidation: nothing to upload; no request was made
//   - KindTransport: the request could not be sent or the body not read
//   - KindServer: non-2xx status (Status holds the code)
//   - KindDecode: malformed envelope or record (Stage says which)
//
// UserMessage collapses everything except validation to one generic string.
// The status code and cause are for the diagnostic log only.
//
// # Timeouts
//
// No timeout is applied unless WithTimeout is given; requests are never
// retried and an in-flight request is only abandoned when its context ends.
package foodlens

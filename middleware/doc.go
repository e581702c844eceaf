// Package middleware rejects HTTP requests that do not match an OpenAPI
// document before they reach the wrapped handler.
//
// Rejected requests get the validation result as a JSON body:
//
//	invalid path    404 {"status":"error","data":"Invalid request path"}
//	invalid method  405 {"status":"error","data":"Invalid request method"}
//	invalid body    400 {"status":"error","data":{"missing":[...],"invalid":[...]}}
//	body too large  413 (same body as invalid body)
//	config error    500
//
// Every request carries an X-Request-Id header, taken from the incoming
// request or generated, which is echoed on the response and attached to log
// lines.
//
// # Usage
//
//	v, err := requestvalidator.New(requestvalidator.WithFilePath("openapi.json"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	mw, err := middleware.New(v, middleware.WithRegisterer(prometheus.DefaultRegisterer))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	http.ListenAndServe(":8080", mw.Handler(apiHandler))
//
// # Metrics
//
// With a registerer configured, the middleware exports
// oasguard_requests_total{outcome} and oasguard_validation_duration_seconds.
package middleware

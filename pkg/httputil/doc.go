// Package httputil provides HTTP utilities for the remote repository client.
//
// # Retry
//
// [Retry] wraps requests with automatic retry for transient failures:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    resp, err := client.Do(req)
//	    if err != nil {
//	        return &httputil.RetryableError{Err: err}
//	    }
//	    ...
//	})
//
// Only errors wrapped in [RetryableError] are retried; anything else, such
// as a 404 from a repository, is returned immediately.
package httputil

package utils

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// VerifyExternalURL issues a HEAD request against an external video URL to
// catch dead links before they reach students. Gated behind the
// VERIFY_VIDEO_URLS config flag by callers.
func VerifyExternalURL(url string) error {
	client := resty.New().SetTimeout(5 * time.Second)

	resp, err := client.R().Head(url)
	if err != nil {
		return err
	}
	if resp.StatusCode() >= 400 {
		return fmt.Errorf("url returned status %d", resp.StatusCode())
	}
	return nil
}

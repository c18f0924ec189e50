// Vidfeed - Personalized Video Feed Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidfeed

package validation

import "testing"

func TestParseUpNextRequest(t *testing.T) {
	tests := []struct {
		name      string
		videoID   string
		limit     string
		want      UpNextRequest
		wantField string
		wantTag   string
	}{
		{name: "default limit", videoID: "7", limit: "", want: UpNextRequest{VideoID: 7, Limit: 5}},
		{name: "explicit limit", videoID: "7", limit: "12", want: UpNextRequest{VideoID: 7, Limit: 12}},
		{name: "max limit", videoID: "7", limit: "20", want: UpNextRequest{VideoID: 7, Limit: 20}},
		{name: "limit above max", videoID: "7", limit: "21", wantField: "limit", wantTag: "max"},
		{name: "zero limit", videoID: "7", limit: "0", wantField: "limit", wantTag: "min"},
		{name: "non-numeric limit", videoID: "7", limit: "ten", wantField: "limit", wantTag: "numeric"},
		{name: "non-numeric video", videoID: "abc", limit: "", wantField: "video_id", wantTag: "numeric"},
		{name: "zero video", videoID: "0", limit: "", wantField: "video_id", wantTag: "min"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseUpNextRequest(tt.videoID, tt.limit, 5)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("ParseUpNextRequest() error = %v", err)
				}
				if got != tt.want {
					t.Errorf("ParseUpNextRequest() = %+v, want %+v", got, tt.want)
				}
				return
			}
			if err == nil {
				t.Fatalf("ParseUpNextRequest() = %+v, want error", got)
			}
			first := err.Errors()[0]
			if first.Field() != tt.wantField || first.Tag() != tt.wantTag {
				t.Errorf("error = %s/%s, want %s/%s", first.Field(), first.Tag(), tt.wantField, tt.wantTag)
			}
		})
	}
}

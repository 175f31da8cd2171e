package bridge

import "strings"

// VideoSource names the extraction path that produced a video reference.
type VideoSource int

const (
	SourceNone VideoSource = iota
	SourceVideoURL
	SourceFileURI
	SourceInlineData
)

func (s VideoSource) String() string {
	switch s {
	case SourceVideoURL:
		return "videoUrl"
	case SourceFileURI:
		return "fileData"
	case SourceInlineData:
		return "inlineData"
	default:
		return "none"
	}
}

const defaultVideoMimeType = "video/mp4"

// FirstPart returns the first candidate's first content part, or nil.
func FirstPart(resp *Response) *Part {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil
	}
	c := resp.Candidates[0]
	if c == nil || c.Content == nil || len(c.Content.Parts) == 0 {
		return nil
	}
	return c.Content.Parts[0]
}

// Normalize extracts one playable video reference from an upstream response.
//
// Priority is videoUrl, then fileData.fileUri, then inlineData as a data URI.
// A path wins only when its value is non-blank, and the value is returned as sent. When fields are present but
// all empty the result is KindEmptyResponse; when the part carries none of the
// recognized fields the result is KindUnrecognizedResponse. No placeholder is
// ever substituted.
func Normalize(resp *Response) (Result, error) {
	part := FirstPart(resp)
	if part == nil {
		return Result{}, newError(KindEmptyResponse, MsgNoVideoData, nil)
	}

	recognized := false

	if part.VideoURL != nil {
		recognized = true
		if strings.TrimSpace(*part.VideoURL) != "" {
			return Result{VideoURL: *part.VideoURL, Source: SourceVideoURL}, nil
		}
	}

	if part.FileData != nil {
		recognized = true
		if strings.TrimSpace(part.FileData.FileURI) != "" {
			return Result{VideoURL: part.FileData.FileURI, Source: SourceFileURI}, nil
		}
	}

	if part.InlineData != nil {
		recognized = true
		if part.InlineData.Data != "" {
			mimeType := part.InlineData.MimeType
			if mimeType == "" {
				mimeType = defaultVideoMimeType
			}
			return Result{
				VideoURL: "data:" + mimeType + ";base64," + part.InlineData.Data,
				Source:   SourceInlineData,
			}, nil
		}
	}

	if recognized {
		return Result{}, newError(KindEmptyResponse, MsgEmptyVideoData, nil)
	}
	return Result{}, newError(KindUnrecognizedResponse, MsgUnrecognizedResponse, nil)
}

package payload

import (
	"bytes"
	"fmt"
	"mime/multipart"

	"github.com/ticketlane/eventwizard/internal/wizard"
)

// Multipart field names are a fixed contract with the events backend.
const (
	fieldUserID            = "user_id"
	fieldEventTitle        = "event_title"
	fieldEventSlug         = "event_slug"
	fieldCategoryID        = "category_id"
	fieldEventType         = "event_type"
	fieldSubcategoryID     = "subcategory_id"
	fieldExtraData         = "extra_data"
	fieldHashTags          = "hash_tags"
	fieldCustomSubcategory = "custom_subcategory_name"
	fieldCardImage         = "card_image"
	fieldBannerImage       = "banner_image"
	fieldExtraImages       = "extra_images[]"
)

// MetadataForm assembles the multipart body for event create/update. Image
// parts are written only for locally provided files; images already stored
// upstream keep their remote URL and are not re-uploaded.
func MetadataForm(userID string, f wizard.FormData) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	extra, err := ExtraData(f)
	if err != nil {
		return nil, "", err
	}

	fields := map[string]string{
		fieldUserID:            userID,
		fieldEventTitle:        f.Title,
		fieldEventSlug:         Slug(f.Title),
		fieldCategoryID:        f.CategoryID,
		fieldEventType:         f.EventTypeID,
		fieldSubcategoryID:     f.SubcategoryID,
		fieldExtraData:         extra,
		fieldHashTags:          Hashtags(f.HashtagsRaw),
		fieldCustomSubcategory: f.CustomSubcategory,
	}

	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", name, err)
		}
	}

	if err := writeImage(w, fieldCardImage, f.CardImage); err != nil {
		return nil, "", err
	}
	if err := writeImage(w, fieldBannerImage, f.BannerImage); err != nil {
		return nil, "", err
	}
	for _, img := range f.GalleryImages {
		if err := writeImage(w, fieldExtraImages, img); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}

	return body, w.FormDataContentType(), nil
}

func writeImage(w *multipart.Writer, field string, img wizard.ImageRef) error {
	if !img.Local() {
		return nil
	}

	name := img.FileName
	if name == "" {
		name = field
	}

	part, err := w.CreateFormFile(field, name)
	if err != nil {
		return fmt.Errorf("create file part %s: %w", field, err)
	}

	if _, err := part.Write(img.Data); err != nil {
		return fmt.Errorf("write file part %s: %w", field, err)
	}

	return nil
}

// file: internals/helpers/cloudinary/cloudinary_service.go
package cloudinary

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"regexp"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gofiber/fiber/v2"

	"ardu_backend/internals/configs"
	helper "ardu_backend/internals/helpers"
)

// Batas durasi video untuk story/post: 60 detik.
// Video yang lebih panjang dipotong oleh Cloudinary saat upload (du_60).
const maxVideoDurationSeconds = 60

/*
MediaService adalah facade upload/hapus media yang seragam untuk controller.

- UploadMedia : file post/story apa adanya (resource_type auto, video dipotong 60s)
- UploadImage : foto profil → re-encode WebP dulu baru diupload
- Destroy     : hapus by public id (best-effort di sisi pemanggil)
*/
type MediaService struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewMediaServiceFromEnv membuat instance dari CLOUDINARY_URL.
func NewMediaServiceFromEnv() (*MediaService, error) {
	if configs.CloudinaryURL == "" {
		return nil, fmt.Errorf("CLOUDINARY_URL belum diset")
	}
	cld, err := cloudinary.NewFromURL(configs.CloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("gagal inisialisasi cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true
	return &MediaService{cld: cld, folder: configs.CloudinaryFolder}, nil
}

// UploadMedia mengupload file post/story. resource_type auto (image/video/raw);
// kalau video, terapkan transformasi potong durasi + codec auto.
func (s *MediaService) UploadMedia(ctx context.Context, fh *multipart.FileHeader) (publicURL, publicID string, err error) {
	if fh == nil {
		return "", "", fiber.NewError(fiber.StatusBadRequest, "File tidak ditemukan")
	}

	src, err := fh.Open()
	if err != nil {
		return "", "", fiber.NewError(fiber.StatusBadRequest, "Gagal membuka file")
	}
	defer src.Close()

	params := uploader.UploadParams{
		Folder:       s.folder,
		ResourceType: "auto",
	}
	if strings.HasPrefix(fh.Header.Get("Content-Type"), "video/") {
		log.Printf("[MEDIA] Video terdeteksi, potong ke max %ds: %s", maxVideoDurationSeconds, fh.Filename)
		params.Transformation = fmt.Sprintf("vc_auto,du_%d", maxVideoDurationSeconds)
	}

	resp, err := s.cld.Upload.Upload(ctx, src, params)
	if err != nil {
		return "", "", fiber.NewError(fiber.StatusBadGateway, "Gagal upload ke Cloudinary: "+err.Error())
	}
	return resp.SecureURL, resp.PublicID, nil
}

// UploadImage untuk foto profil: re-encode WebP (hemat bandwidth, sama seperti
// pipeline gambar lama) lalu upload sebagai image.
func (s *MediaService) UploadImage(ctx context.Context, fh *multipart.FileHeader) (publicURL, publicID string, err error) {
	if fh == nil {
		return "", "", fiber.NewError(fiber.StatusBadRequest, "File tidak ditemukan")
	}

	webpBytes, err := helper.ConvertImageToWebP(fh, 1600, 1600)
	if err != nil {
		return "", "", fiber.NewError(fiber.StatusBadRequest, "File bukan gambar yang valid: "+err.Error())
	}

	resp, err := s.cld.Upload.Upload(ctx, bytes.NewReader(webpBytes), uploader.UploadParams{
		Folder:       s.folder,
		ResourceType: "image",
	})
	if err != nil {
		return "", "", fiber.NewError(fiber.StatusBadGateway, "Gagal upload ke Cloudinary: "+err.Error())
	}
	return resp.SecureURL, resp.PublicID, nil
}

// Destroy menghapus asset by public id. resourceType: "image" / "video".
func (s *MediaService) Destroy(ctx context.Context, publicID, resourceType string) error {
	if strings.TrimSpace(publicID) == "" {
		return nil
	}
	if resourceType == "" {
		resourceType = "image"
	}
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: resourceType,
	})
	return err
}

/* =======================================================================
   Public ID & resource type dari delivery URL
======================================================================= */

// contoh: .../image/upload/v1600000000/ardu_media/foto.webp → ardu_media/foto
var publicIDRe = regexp.MustCompile(`/v\d+/(.+?)(?:\.\w+)?$`)

// ExtractPublicID mengambil public id (termasuk folder) dari secure URL.
// Kosong kalau URL tidak dikenali.
func ExtractPublicID(publicURL string) string {
	if publicURL == "" {
		return ""
	}
	m := publicIDRe.FindStringSubmatch(publicURL)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

// GuessResourceType menebak tipe asset dari delivery URL.
func GuessResourceType(publicURL string) string {
	if strings.Contains(publicURL, "/video/") {
		return "video"
	}
	return "image"
}

package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"regexp"
	"time"

	"Backend-ScholarDB/src/models"
)

var filenamePattern = regexp.MustCompile(`/storage/file/(.+)$`)

// UploadedFile ผลลัพธ์จาก storage service หลังอัปโหลดสำเร็จ
type UploadedFile struct {
	URL          string `json:"url"`
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	Size         int64  `json:"size"`
	Type         string `json:"type"`
}

type uploadResponse struct {
	Success bool          `json:"success"`
	Msg     string        `json:"msg"`
	Data    *UploadedFile `json:"data"`
}

type deleteResponse struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg"`
}

// Client เรียก storage microservice (อัปโหลด/ลบไฟล์ตามชื่อ)
type Client struct {
	baseURL   string
	publicURL string
	http      *http.Client
}

func NewClient(baseURL, publicURL string) *Client {
	return &Client{
		baseURL:   baseURL,
		publicURL: publicURL,
		http:      &http.Client{Timeout: 30 * time.Second},
	}
}

// Upload ส่งไฟล์ไป storage service แล้วคืน URL สาธารณะ
func (c *Client) Upload(filename string, contentType string, r io.Reader) (*UploadedFile, error) {
	if c.baseURL == "" {
		return nil, errors.New("STORAGE_URL not configured")
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fw, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(fw, r); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/storage/upload", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	var out uploadResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, err
	}
	if !out.Success || out.Data == nil {
		return nil, fmt.Errorf("storage upload failed: %s", out.Msg)
	}

	return out.Data, nil
}

// Delete ลบไฟล์ตามชื่อ
func (c *Client) Delete(filename string) error {
	if c.baseURL == "" {
		return errors.New("STORAGE_URL not configured")
	}

	req, err := http.NewRequest(http.MethodDelete, c.baseURL+"/storage/file/"+filename, nil)
	if err != nil {
		return err
	}

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	var out deleteResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return err
	}
	if !out.Success {
		return fmt.Errorf("storage delete failed: %s", out.Msg)
	}

	return nil
}

// FileURL สร้าง URL สาธารณะของไฟล์จากชื่อ
func (c *Client) FileURL(filename string) string {
	if c.publicURL == "" {
		return ""
	}
	return c.publicURL + "/storage/file/" + filename
}

// ExtractFilename ดึงชื่อไฟล์ออกจาก URL รูปแบบ /storage/file/{filename}
func ExtractFilename(url string) string {
	m := filenamePattern.FindStringSubmatch(url)
	if m == nil {
		return ""
	}
	return m[1]
}

// ExtractFileURLs รวบรวม URL ไฟล์ทั้งหมดใน form_data (สแกนสองชั้น field -> question)
func ExtractFileURLs(formData models.FormData) []string {
	var urls []string

	for _, sectionValue := range formData {
		section, ok := models.AsMap(sectionValue)
		if !ok {
			continue
		}
		for _, fieldValue := range section {
			if s, ok := fieldValue.(string); ok && models.IsStorageFileURL(s) {
				urls = append(urls, s)
			}
		}
	}

	return urls
}

// CleanupOldFiles ลบไฟล์ที่เคยอ้างถึงใน form_data เดิมแต่หายไปหลัง merge
// (garbage collection แบบ best-effort - ลบพลาดแค่ log ไม่ block การบันทึก)
func (c *Client) CleanupOldFiles(oldFormData, newFormData models.FormData) {
	oldURLs := ExtractFileURLs(oldFormData)
	newURLs := ExtractFileURLs(newFormData)

	stillReferenced := make(map[string]bool, len(newURLs))
	for _, u := range newURLs {
		stillReferenced[u] = true
	}

	for _, u := range oldURLs {
		if stillReferenced[u] {
			continue
		}
		filename := ExtractFilename(u)
		if filename == "" {
			continue
		}
		if err := c.Delete(filename); err != nil {
			log.Println("⚠️ Failed to delete old file:", filename, err)
		}
	}
}

// model/accessory.go
package model

type Accessory struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	ImagePath *string `json:"image_path,omitempty"`
}

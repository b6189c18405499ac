package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Device is a named sync endpoint. Sync itself is simulated: only LastSynced
// is ever touched.
type Device struct {
	ID         int64      `json:"id"`
	UserID     int64      `json:"userId"`
	Name       string     `json:"name"`
	DeviceID   string     `json:"deviceId"`
	LastSynced *time.Time `json:"lastSynced"`
	Active     bool       `json:"active"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// NewDevice is the payload accepted when a device is registered.
type NewDevice struct {
	UserID     int64      `json:"userId"`
	Name       string     `json:"name"`
	DeviceID   string     `json:"deviceId"`
	LastSynced *time.Time `json:"lastSynced"`
	Active     *bool      `json:"active"`
}

// Validate checks the create payload.
func (d *NewDevice) Validate() error {
	var c checker
	c.check(d.UserID > 0, "userId", "required")
	c.check(strings.TrimSpace(d.Name) != "", "name", "required")
	return c.err()
}

// Device builds the stored form of the payload. A missing DeviceID is
// replaced by a random UUID.
func (d *NewDevice) Device() Device {
	active := true
	if d.Active != nil {
		active = *d.Active
	}
	deviceID := strings.TrimSpace(d.DeviceID)
	if deviceID == "" {
		deviceID = uuid.NewString()
	}
	return Device{
		UserID:     d.UserID,
		Name:       d.Name,
		DeviceID:   deviceID,
		LastSynced: d.LastSynced,
		Active:     active,
	}
}

// DevicePatch is a partial device update.
type DevicePatch struct {
	Name       *string    `json:"name"`
	DeviceID   *string    `json:"deviceId"`
	LastSynced *time.Time `json:"lastSynced"`
	Active     *bool      `json:"active"`
}

// Validate checks the fields present in the patch.
func (p *DevicePatch) Validate() error {
	var c checker
	if p.Name != nil {
		c.check(strings.TrimSpace(*p.Name) != "", "name", "must not be empty")
	}
	if p.DeviceID != nil {
		c.check(strings.TrimSpace(*p.DeviceID) != "", "deviceId", "must not be empty")
	}
	return c.err()
}

// Apply copies the patch onto d.
func (p *DevicePatch) Apply(d *Device) {
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.DeviceID != nil {
		d.DeviceID = *p.DeviceID
	}
	if p.LastSynced != nil {
		d.LastSynced = p.LastSynced
	}
	if p.Active != nil {
		d.Active = *p.Active
	}
}

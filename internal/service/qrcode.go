package service

import (
	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"
)

// QRCodeSize is the edge length in pixels of badge codes.
const QRCodeSize = 256

// EmployeeQRCode renders the PNG badge that encodes empID.
func EmployeeQRCode(empID string) ([]byte, error) {
	if empID == "" {
		return nil, errors.New("emp_id is required")
	}

	png, err := qrcode.Encode(empID, qrcode.Medium, QRCodeSize)
	if err != nil {
		return nil, errors.Wrap(err, "encoding qr code")
	}

	return png, nil
}

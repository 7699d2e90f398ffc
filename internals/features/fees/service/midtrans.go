// file: internals/features/fees/service/midtrans.go
package service

import (
	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	"sekolahku_backend/internals/features/fees/model"
)

var SnapClient snap.Client

// InitMidtrans initialises the Snap client with the school's server key.
func InitMidtrans(serverKey string) {
	SnapClient.New(serverKey, midtrans.Sandbox)
}

// GenerateSnapToken opens a Snap transaction for an online fee payment
// and returns the token plus the hosted payment page URL. The receipt
// number doubles as the Midtrans order id.
func GenerateSnapToken(p model.FeePaymentModel, name, email string) (string, string, error) {
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  p.ReceiptNumber,
			GrossAmt: int64(p.TotalAmount),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: name,
			Email: email,
		},
	}

	resp, err := SnapClient.CreateTransaction(req)
	if err != nil {
		return "", "", err
	}
	return resp.Token, resp.RedirectURL, nil
}

package services

import (
	"fmt"
	"sync"

	"github.com/pandukusuma/qr-order-app/models"
	"github.com/pandukusuma/qr-order-app/utils"
)

type CheckoutState int

const (
	CheckoutIdle CheckoutState = iota
	CheckoutValidating
	CheckoutSubmitting
	CheckoutSuccess
	CheckoutFailed
)

const (
	OutcomeSuccess        = "success"
	OutcomePartialSuccess = "partial_success"
)

// ValidationError adalah kegagalan validasi sisi-flow: tidak ada satupun
// panggilan repository yang boleh terjadi sebelum validasi lolos.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

type CheckoutForm struct {
	CustomerName  string `json:"customer_name"`
	CustomerNote  string `json:"customer_note"`
	PaymentMethod string `json:"payment_method"`
	BankChoice    string `json:"bank_choice"`
	ProofFilePath string `json:"-"`
}

type CheckoutResult struct {
	Outcome   string `json:"outcome"`
	OrderCode string `json:"order_code"`
	Message   string `json:"message"`
}

// CheckoutFlow menjalankan state machine checkout satu sesi:
// Idle -> Validating -> Submitting -> (Success | Failed).
// Untuk metode transfer ada dua panggilan berurutan: create-order lalu
// upload-proof; yang kedua dilewati sepenuhnya bila yang pertama gagal.
type CheckoutFlow struct {
	mu       sync.Mutex
	state    CheckoutState
	repo     OrderRepository
	carts    *CartStore
	tenantID uint
	session  string
	qrToken  string
	method   string
}

func NewCheckoutFlow(repo OrderRepository, carts *CartStore, tenantID uint, session, qrToken string) *CheckoutFlow {
	f := &CheckoutFlow{
		repo:     repo,
		carts:    carts,
		tenantID: tenantID,
		session:  session,
		qrToken:  qrToken,
	}
	f.Open()
	return f
}

// Open mereset flow ke Idle. Metode pembayaran selalu kembali default ke
// cash setiap panel checkout dibuka ulang.
func (f *CheckoutFlow) Open() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = CheckoutIdle
	f.method = models.MethodCash
}

func (f *CheckoutFlow) State() CheckoutState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *CheckoutFlow) PaymentMethod() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.method
}

// Submit memvalidasi form lalu mengirim order. Kegagalan validasi
// mengembalikan *ValidationError dan flow tetap Idle tanpa side effect.
func (f *CheckoutFlow) Submit(form CheckoutForm) (*CheckoutResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == CheckoutSubmitting {
		return nil, fmt.Errorf("checkout sedang diproses")
	}

	if form.PaymentMethod != "" {
		f.method = form.PaymentMethod
	}

	f.state = CheckoutValidating
	lines := f.carts.Lines(f.session)
	if err := f.validate(form, lines); err != nil {
		f.state = CheckoutIdle
		return nil, err
	}

	f.state = CheckoutSubmitting

	input := CreateOrderInput{
		TenantID:      f.tenantID,
		QRToken:       f.qrToken,
		CustomerName:  form.CustomerName,
		CustomerNote:  form.CustomerNote,
		PaymentMethod: f.method,
		BankChoice:    form.BankChoice,
	}
	for _, line := range lines {
		input.Items = append(input.Items, OrderItemInput{
			MenuID:        line.MenuID,
			Quantity:      line.Quantity,
			OptionItemIDs: line.OptionItemIDs,
			Note:          line.Note,
		})
	}

	order, err := f.repo.CreateOrder(input)
	if err != nil {
		// Create gagal: keranjang dan form tidak disentuh supaya
		// customer bisa retry tanpa mengisi ulang.
		f.state = CheckoutFailed
		if utils.ErrorLogger != nil {
			utils.ErrorLogger.Printf("checkout gagal membuat order: %v", err)
		}
		return nil, err
	}

	if f.method == models.MethodTransfer {
		proofErr := f.repo.AttachProof(f.tenantID, order.OrderCode, ProofInput{
			FilePath: form.ProofFilePath,
			Method:   f.method,
			Amount:   order.TotalAmount,
			BankName: form.BankChoice,
		})
		if proofErr != nil {
			// Order sudah terlanjur ada di server. Kebijakan eksplisit:
			// jalan terus, keranjang tetap dibersihkan, tandai untuk
			// rekonsiliasi manual (bukan rollback).
			f.carts.Clear(f.session)
			f.state = CheckoutSuccess
			if utils.ErrorLogger != nil {
				utils.ErrorLogger.Printf("upload bukti gagal untuk order %s: %v", order.OrderCode, proofErr)
			}
			return &CheckoutResult{
				Outcome:   OutcomePartialSuccess,
				OrderCode: order.OrderCode,
				Message:   "Order berhasil dibuat, tetapi upload bukti pembayaran gagal. Silakan hubungi staff untuk konfirmasi manual.",
			}, nil
		}
	}

	f.carts.Clear(f.session)
	f.state = CheckoutSuccess
	return &CheckoutResult{
		Outcome:   OutcomeSuccess,
		OrderCode: order.OrderCode,
		Message:   "Order berhasil dibuat",
	}, nil
}

func (f *CheckoutFlow) validate(form CheckoutForm, lines []models.CartLine) error {
	if len(lines) == 0 {
		return &ValidationError{Field: "cart", Message: "Keranjang masih kosong"}
	}
	if form.CustomerName == "" {
		return &ValidationError{Field: "customer_name", Message: "Nama pemesan wajib diisi"}
	}
	if f.method == models.MethodTransfer && form.ProofFilePath == "" {
		return &ValidationError{Field: "proof", Message: "Bukti transfer wajib dilampirkan"}
	}
	return nil
}

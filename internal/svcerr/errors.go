// Package svcerr servis katmanının sentinel hatalarını tanımlar.
// Servisler bu hataları fmt.Errorf("...: %w") ile sarar,
// handler katmanı errors.Is ile HTTP koduna çevirir.
package svcerr

import "errors"

var (
	// ErrNotFound kullanıcı/etkinlik/katılımcı/bahis bulunamadı
	ErrNotFound = errors.New("kayıt bulunamadı")

	// ErrInsufficientFunds bakiye yetersiz; hiçbir yan etki bırakmaz
	ErrInsufficientFunds = errors.New("yetersiz bakiye")

	// ErrEventNotBettable biten veya iptal edilen etkinliğe bahis yapılamaz
	ErrEventNotBettable = errors.New("bu etkinliğe artık bahis kabul edilmiyor")

	// ErrAlreadyFinished etkinlik zaten sonuçlandırılmış
	ErrAlreadyFinished = errors.New("etkinlik zaten sonuçlandırıldı")

	// ErrAlreadyCancelled etkinlik zaten iptal edilmiş
	ErrAlreadyCancelled = errors.New("etkinlik iptal edildi")

	// ErrInvalidWinner kazanan etkinliğin katılımcısı değil
	ErrInvalidWinner = errors.New("kazanan etkinliğin katılımcısı olmalı")

	// ErrPaymentNotFound external_id ile eşleşen ödeme yok
	ErrPaymentNotFound = errors.New("ödeme bulunamadı")

	// ErrInvalidState geçersiz durum geçişi veya geçersiz girdi
	ErrInvalidState = errors.New("geçersiz işlem durumu")

	// ErrExternalService dış banka sağlayıcısına ulaşılamadı
	ErrExternalService = errors.New("dış ödeme servisi hatası")
)

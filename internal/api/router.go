package api

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	"github.com/AlexZinkM/legacy-wallet/internal/handler"
	"github.com/AlexZinkM/legacy-wallet/wallet"
)

// SetupRouter sets up router with handlers
func SetupRouter(serializer *wallet.Serializer, log *zap.Logger) (http.Handler, error) {
	walletHandler, err := handler.NewWalletHandler(serializer, log)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Wallet endpoints
	mux.HandleFunc("/wallet/keys", walletHandler.GetKeys)
	mux.HandleFunc("/wallet/keys/qr", walletHandler.GetKeysQR)
	mux.HandleFunc("/wallet/transactions", walletHandler.TransactionHistory)
	mux.HandleFunc("/wallet/save", walletHandler.Save)

	return mux, nil
}

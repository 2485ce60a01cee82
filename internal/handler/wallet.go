package handler

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/AlexZinkM/legacy-wallet/internal/account"
	"github.com/AlexZinkM/legacy-wallet/internal/common"
	"github.com/AlexZinkM/legacy-wallet/internal/config"
	"github.com/AlexZinkM/legacy-wallet/internal/history"
	"github.com/AlexZinkM/legacy-wallet/internal/model"
	"github.com/AlexZinkM/legacy-wallet/wallet"
)

// WalletHandler serves a read-mostly view of one wallet file
type WalletHandler struct {
	filePath   string
	decimals   int
	serializer *wallet.Serializer
	log        *zap.Logger

	// mu serializes access to the wallet file
	mu sync.Mutex
}

// NewWalletHandler creates a new WalletHandler with config values
func NewWalletHandler(serializer *wallet.Serializer, log *zap.Logger) (*WalletHandler, error) {
	filePath := config.GetWalletFilePath()
	if filePath == "" {
		return nil, errors.New("WALLET_FILE_PATH not set")
	}

	return &WalletHandler{
		filePath:   filePath,
		decimals:   config.GetAmountDecimals(),
		serializer: serializer,
		log:        log,
	}, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg, Code: code})
}

// load decrypts the wallet file with the stored password
func (h *WalletHandler) load(w http.ResponseWriter) (*wallet.Result, bool) {
	// Get password as []byte, use it, then zero it immediately
	passwordBytes, err := config.GetPasswordBytes()
	if err != nil {
		writeError(w, http.StatusBadRequest, model.CodePasswordNotLoaded, err.Error())
		return nil, false
	}
	defer clear(passwordBytes) // Always clear password from memory

	res, err := h.serializer.LoadFile(h.filePath, passwordBytes)
	if err != nil {
		h.writeLoadError(w, err)
		return nil, false
	}
	return res, true
}

func (h *WalletHandler) writeLoadError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, wallet.ErrWrongPassword):
		h.log.Warn("wallet password rejected")
		writeError(w, http.StatusUnauthorized, model.CodeWrongPassword, err.Error())
	case errors.Is(err, wallet.ErrMalformedEnvelope):
		h.log.Error("wallet file is not a wallet container", zap.Error(err))
		writeError(w, http.StatusUnprocessableEntity, model.CodeMalformedFile, err.Error())
	case errors.Is(err, wallet.ErrCorruptedDetails):
		h.log.Error("wallet details are corrupted", zap.Error(err))
		writeError(w, http.StatusUnprocessableEntity, model.CodeCorruptedDetails, err.Error())
	default:
		h.log.Error("failed to load wallet", zap.Error(err))
		writeError(w, http.StatusInternalServerError, model.CodeInternal, err.Error())
	}
}

// GetKeys handles GET /wallet/keys
// @Summary      Get wallet public keys
// @Description  Decrypts the wallet file and returns the public spend and view keys. Secret keys are never returned.
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.KeysResponse
// @Failure      401  {object}  model.ErrorResponse
// @Failure      422  {object}  model.ErrorResponse
// @Router       /wallet/keys [get]
func (h *WalletHandler) GetKeys(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, model.CodeMethodNotAllowed, "Method not allowed. Should be GET")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	res, ok := h.load(w)
	if !ok {
		return
	}
	defer res.Wipe()

	acc := account.New(res.Keys, res.CreationTimestamp)
	writeJSON(w, http.StatusOK, model.KeysResponse{
		SpendPublicKey:       res.Keys.SpendPublicKey.String(),
		SpendPublicKeyBase58: solana.PublicKeyFromBytes(res.Keys.SpendPublicKey[:]).String(),
		ViewPublicKey:        res.Keys.ViewPublicKey.String(),
		ViewPublicKeyBase58:  solana.PublicKeyFromBytes(res.Keys.ViewPublicKey[:]).String(),
		WatchOnly:            acc.IsWatchOnly(),
		CreatedAt:            acc.CreatedAt().Format(time.RFC3339),
		FileVersion:          res.Version,
	})
}

// GetKeysQR handles GET /wallet/keys/qr
// @Summary      Get QR code of the public keys
// @Description  Returns a PNG QR code encoding the public spend and view keys
// @Tags         wallet
// @Produce      png
// @Success      200
// @Failure      401  {object}  model.ErrorResponse
// @Router       /wallet/keys/qr [get]
func (h *WalletHandler) GetKeysQR(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, model.CodeMethodNotAllowed, "Method not allowed. Should be GET")
		return
	}

	h.mu.Lock()
	res, ok := h.load(w)
	h.mu.Unlock()
	if !ok {
		return
	}
	defer res.Wipe()

	png, err := wallet.PublicKeysQR(res.Keys)
	if err != nil {
		writeError(w, http.StatusInternalServerError, model.CodeInternal, err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// TransactionHistory handles GET /wallet/transactions
// @Summary      Get wallet transactions
// @Description  Gets the transaction history stored in the wallet file with filtering capability
// @Tags         wallet
// @Produce      json
// @Param        type       query     string   false  "Transaction type: DEBIT or CREDIT"
// @Param        txHash     query     string   false  "Transaction hash (hex)"
// @Param        from       query     string   false  "Start date (YYYY-MM-DD)"
// @Param        to         query     string   false  "End date (YYYY-MM-DD)"
// @Param        minAmount  query     string   false  "Minimum amount"
// @Param        maxAmount  query     string   false  "Maximum amount"
// @Param        status     query     string   false  "ACTIVE, DELETED, SENDING, CANCELLED or FAILED"
// @Success      200  {object}  model.LogResponse
// @Failure      400  {object}  model.ErrorResponse
// @Router       /wallet/transactions [get]
func (h *WalletHandler) TransactionHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, model.CodeMethodNotAllowed, "Method not allowed. Should be GET")
		return
	}

	req, err := parseLogRequest(r)
	if err == nil {
		err = req.Validate(h.decimals)
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, model.CodeInvalidRequest, err.Error())
		return
	}

	filter, err := h.historyFilter(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.CodeInvalidRequest, err.Error())
		return
	}

	h.mu.Lock()
	res, ok := h.load(w)
	h.mu.Unlock()
	if !ok {
		return
	}
	defer res.Wipe()

	writeJSON(w, http.StatusOK, h.logResponse(res, filter))
}

func parseLogRequest(r *http.Request) (*model.LogRequest, error) {
	var req model.LogRequest
	q := r.URL.Query()

	// Parse date parameters (YYYY-MM-DD)
	const dateLayout = "2006-01-02"
	if fromStr := q.Get("from"); fromStr != "" {
		t, err := time.Parse(dateLayout, fromStr)
		if err != nil {
			return nil, errors.New("invalid from date: use YYYY-MM-DD (e.g. 2006-01-02)")
		}
		req.From = &t
	}
	if toStr := q.Get("to"); toStr != "" {
		t, err := time.Parse(dateLayout, toStr)
		if err != nil {
			return nil, errors.New("invalid to date: use YYYY-MM-DD (e.g. 2006-01-02)")
		}
		// End of day so filter is inclusive
		t = t.Add(24*time.Hour - time.Nanosecond)
		req.To = &t
	}

	if typeStr := q.Get("type"); typeStr != "" {
		txType := model.TransactionType(typeStr)
		req.Type = &txType
	}
	if txHash := q.Get("txHash"); txHash != "" {
		req.TxHash = &txHash
	}
	if minAmount := q.Get("minAmount"); minAmount != "" {
		req.MinAmount = &minAmount
	}
	if maxAmount := q.Get("maxAmount"); maxAmount != "" {
		req.MaxAmount = &maxAmount
	}
	if status := q.Get("status"); status != "" {
		req.Status = &status
	}
	return &req, nil
}

// historyFilter converts a validated request into a history filter
func (h *WalletHandler) historyFilter(req *model.LogRequest) (history.Filter, error) {
	f := history.Filter{From: req.From, To: req.To}

	if req.Type != nil {
		incoming := *req.Type == model.TransactionTypeCredit
		f.Incoming = &incoming
	}
	if req.TxHash != nil {
		raw, err := hex.DecodeString(*req.TxHash)
		if err != nil {
			return f, errors.New("txHash must be hex")
		}
		var hash history.Hash
		copy(hash[:], raw)
		f.Hash = &hash
	}
	if req.MinAmount != nil {
		v, err := common.ParseAmount(*req.MinAmount, h.decimals)
		if err != nil {
			return f, err
		}
		f.MinAmount = &v
	}
	if req.MaxAmount != nil {
		v, err := common.ParseAmount(*req.MaxAmount, h.decimals)
		if err != nil {
			return f, err
		}
		f.MaxAmount = &v
	}
	if req.Status != nil {
		st, err := history.ParseState(*req.Status)
		if err != nil {
			return f, err
		}
		f.State = &st
	}
	return f, nil
}

func (h *WalletHandler) logResponse(res *wallet.Result, filter history.Filter) model.LogResponse {
	resp := model.LogResponse{
		HasDetails:   res.HasDetails,
		Transactions: []model.Transaction{},
		Unconfirmed:  []model.UnconfirmedTransfer{},
	}

	var income, spent uint64
	for _, e := range res.History.Query(filter) {
		tx := e.Transaction
		txType := model.TransactionTypeCredit
		if tx.TotalAmount < 0 {
			txType = model.TransactionTypeDebit
			spent = addMagnitude(spent, tx.TotalAmount)
		} else {
			income = addMagnitude(income, tx.TotalAmount)
		}

		item := model.Transaction{
			ID:          e.ID,
			Type:        txType,
			TxHash:      tx.Hash.String(),
			Amount:      common.FormatAmount(tx.TotalAmount, h.decimals),
			Fee:         common.FormatUnsigned(tx.Fee, h.decimals),
			Timestamp:   time.Unix(int64(tx.Timestamp), 0).UTC(),
			BlockNumber: tx.BlockHeight,
			UnlockTime:  tx.UnlockTime,
			IsCoinbase:  tx.IsCoinbase,
			Status:      tx.State.String(),
		}
		for _, t := range e.Transfers {
			item.Transfers = append(item.Transfers, model.Transfer{
				Address: t.Address,
				Amount:  common.FormatAmount(t.Amount, h.decimals),
			})
		}
		resp.Transactions = append(resp.Transactions, item)
	}
	resp.TotalIncome = common.FormatUnsigned(income, h.decimals)
	resp.TotalSpent = common.FormatUnsigned(spent, h.decimals)

	for _, u := range res.History.Unconfirmed() {
		resp.Unconfirmed = append(resp.Unconfirmed, model.UnconfirmedTransfer{
			TxHash:        u.Hash.String(),
			TransactionID: u.TransactionID,
			Amount:        common.FormatUnsigned(u.Amount, h.decimals),
			SentTime:      time.Unix(int64(u.SentTime), 0).UTC(),
			UsedOutputs:   len(u.UsedOutputs),
		})
	}
	return resp
}

// Save handles POST /wallet/save
// @Summary      Rewrite wallet file
// @Description  Re-encrypts the wallet file in the current format with a fresh IV. Legacy files are upgraded.
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.SaveResponse
// @Failure      401  {object}  model.ErrorResponse
// @Router       /wallet/save [post]
func (h *WalletHandler) Save(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, model.CodeMethodNotAllowed, "Method not allowed. should be POST")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	res, ok := h.load(w)
	if !ok {
		return
	}
	defer res.Wipe()

	passwordBytes, err := config.GetPasswordBytes()
	if err != nil {
		writeError(w, http.StatusBadRequest, model.CodePasswordNotLoaded, err.Error())
		return
	}
	defer clear(passwordBytes)

	acc := account.New(res.Keys, res.CreationTimestamp)
	defer acc.Wipe()
	if err := h.serializer.SaveFile(h.filePath, acc, res.HasDetails, res.History, res.Cache, passwordBytes); err != nil {
		h.log.Error("failed to save wallet", zap.Error(err))
		writeError(w, http.StatusInternalServerError, model.CodeInternal, err.Error())
		return
	}

	h.log.Info("wallet saved",
		zap.Uint32("from_version", res.Version),
		zap.Uint32("to_version", wallet.CurrentVersion),
	)
	writeJSON(w, http.StatusOK, model.SaveResponse{
		Success: true,
		Message: "Wallet saved successfully",
		Version: wallet.CurrentVersion,
	})
}

// addMagnitude adds |amount| to sum, saturating at math.MaxUint64.
func addMagnitude(sum uint64, amount int64) uint64 {
	m := uint64(amount)
	if amount < 0 {
		m = -m
	}
	if sum > math.MaxUint64-m {
		return math.MaxUint64
	}
	return sum + m
}

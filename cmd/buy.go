package cmd

import (
	"context"
	"fmt"
)

// BuyCmd represents the non-interactive purchase command
type BuyCmd struct {
	BookID    string `arg:"" help:"Book to purchase"`
	Quantity  int    `short:"q" help:"Number of copies" default:"1"`
	AddressID string `help:"Delivery address identifier (defaults to the only saved address)"`
}

func (b *BuyCmd) Run() error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()
	if _, err := s.requireUser(); err != nil {
		return err
	}

	ctx := context.Background()
	if err := s.controller.Activate(ctx); err != nil {
		return err
	}

	if err := s.controller.StartPurchase(b.BookID); err != nil {
		return err
	}
	wizard := s.controller.Wizard()

	if err := wizard.ConfirmQuantity(b.Quantity); err != nil {
		return err
	}

	addressID := b.AddressID
	if addressID == "" {
		current := s.controller.Addresses().Current()
		if len(current) != 1 {
			return fmt.Errorf("--address-id is required when you have %d saved addresses", len(current))
		}
		addressID = current[0].ID
	}
	if err := wizard.ConfirmAddress(addressID); err != nil {
		return err
	}

	if err := s.controller.SubmitPurchase(ctx); err != nil {
		return err
	}

	printReceipt(s.controller)
	return nil
}

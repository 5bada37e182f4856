package cmd

import (
	"context"
	"fmt"

	"github.com/booksadda/storefront/internal/books"
)

// AddressCmd groups the address book subcommands
type AddressCmd struct {
	List   AddressListCmd   `cmd:"" help:"List saved delivery addresses"`
	Add    AddressAddCmd    `cmd:"" help:"Add a delivery address"`
	Update AddressUpdateCmd `cmd:"" help:"Update a delivery address"`
	Remove AddressRemoveCmd `cmd:"" help:"Remove a delivery address"`
}

// AddressListCmd lists the saved addresses
type AddressListCmd struct{}

func (a *AddressListCmd) Run() error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()
	if _, err := s.requireUser(); err != nil {
		return err
	}

	s.controller.Addresses().Refresh(context.Background())
	current := s.controller.Addresses().Current()
	if len(current) == 0 {
		fmt.Println("No saved addresses")
		return nil
	}
	for _, address := range current {
		fmt.Printf("%-26s %s\n", address.ID, address.Label())
	}
	return nil
}

// AddressAddCmd adds a new address
type AddressAddCmd struct {
	Street     string `required:"" help:"Street address"`
	Landmark   string `help:"Nearby landmark"`
	City       string `required:"" help:"City"`
	State      string `help:"State"`
	PostalCode string `required:"" help:"Postal code"`
	Country    string `help:"Country" default:"India"`
}

func (a *AddressAddCmd) Run() error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()
	userID, err := s.requireUser()
	if err != nil {
		return err
	}

	address := books.Address{
		UserID:     userID,
		Street:     a.Street,
		Landmark:   a.Landmark,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
		Country:    a.Country,
	}
	if err := s.controller.Addresses().Add(context.Background(), address); err != nil {
		return err
	}
	fmt.Println("Address saved")
	return nil
}

// AddressUpdateCmd updates an existing address; unset flags keep the
// current values.
type AddressUpdateCmd struct {
	AddressID  string `arg:"" help:"Address to update"`
	Street     string `help:"Street address"`
	Landmark   string `help:"Nearby landmark"`
	City       string `help:"City"`
	State      string `help:"State"`
	PostalCode string `help:"Postal code"`
	Country    string `help:"Country"`
}

func (a *AddressUpdateCmd) Run() error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()
	if _, err := s.requireUser(); err != nil {
		return err
	}

	ctx := context.Background()
	s.controller.Addresses().Refresh(ctx)
	address, ok := s.controller.Addresses().ByID(a.AddressID)
	if !ok {
		return fmt.Errorf("unknown address: %s", a.AddressID)
	}

	overlay(&address.Street, a.Street)
	overlay(&address.Landmark, a.Landmark)
	overlay(&address.City, a.City)
	overlay(&address.State, a.State)
	overlay(&address.PostalCode, a.PostalCode)
	overlay(&address.Country, a.Country)

	if err := s.controller.Addresses().Update(ctx, a.AddressID, address); err != nil {
		return err
	}
	fmt.Println("Address updated")
	return nil
}

// AddressRemoveCmd removes an address
type AddressRemoveCmd struct {
	AddressID string `arg:"" help:"Address to remove"`
}

func (a *AddressRemoveCmd) Run() error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()
	if _, err := s.requireUser(); err != nil {
		return err
	}

	ctx := context.Background()
	if err := s.controller.Addresses().Remove(ctx, a.AddressID); err != nil {
		return err
	}
	fmt.Println("Address removed")
	return nil
}

func overlay(target *string, value string) {
	if value != "" {
		*target = value
	}
}

// package stax provides a client for the Stax Payments REST API. This covers
// customers, payment methods, invoices, transactions, charges, subscriptions,
// plans, payments, refunds, webhooks, and the cards and bank accounts stored
// against a customer.
//
// stax.Client is the main way to interact with the API. A Client is
// configured from a stax.Config, with anything left unset being read from the
// environment,
//
//     client, err := stax.New(stax.Config{
//         APIKey: os.Getenv("STAX_API_KEY"),
//     })
//
//     if err != nil {
//         panic(err) // Don't actually do this.
//     }
//
// each resource then has functions for listing, retrieving, and creating it,
// and methods for acting on a resource that has been retrieved. For example,
// to create a customer and then pay one of their invoices,
//
//     c, err := stax.CreateCustomer(ctx, client, stax.Params{
//         "firstname": "John",
//         "lastname":  "Smith",
//         "email":     "john@example.com",
//     })
//
//     if err != nil {
//         panic(err) // Handle error properly.
//     }
//
//     inv, err := stax.RetrieveInvoice(ctx, client, "d6fa1a4c-4ed6-4bd7-9b66-6d58ef4a7cd6")
//
//     if err != nil {
//         panic(err) // Be more graceful when you do this.
//     }
//
//     err = inv.Pay(ctx, client, stax.Params{
//         "payment_method_id": pm.ID,
//         "apply_balance":     10,
//         "idempotency_id":    stax.NewIdempotencyKey(),
//     })
//
// Params are passed with snake cased keys. Params for GET and DELETE requests
// are sent in the query string with their keys camel cased, and Params for
// other requests are sent as the JSON body as given. Every response has its
// keys snake cased before being decoded.
//
// Params are validated before a request is sent. A validation failure is
// returned as a *stax.Error with a StatusCode of 0, and a non-2xx response is
// returned as a *stax.Error carrying the status code, message, and decoded
// body of the response. Use errors.Is with stax.ErrValidation,
// stax.ErrNotFound, and stax.ErrUnauthorized to tell these apart.
package stax

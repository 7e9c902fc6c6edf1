// Package setfinepaymentstatus implements the Set Fine Payment Status use case.
//
// Staff may set Paid or Unpaid. The borrower of the fined loan may pay the fine, nothing else.
package setfinepaymentstatus
